package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the lifecycle state of a payment. The only permitted
// transitions are pending -> processing -> succeeded | failed.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSucceeded  PaymentStatus = "succeeded"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// PaymentKind distinguishes the two purchase flows.
type PaymentKind string

const (
	PaymentKindWinningBid PaymentKind = "winning_bid"
	PaymentKindBuyNow     PaymentKind = "buy_now"
)

// Payment records a purchase attempt for an item.
type Payment struct {
	ID          uuid.UUID     `json:"id"`
	ItemID      uuid.UUID     `json:"item_id"`
	BuyerID     uuid.UUID     `json:"buyer_id"`
	Amount      int64         `json:"amount"` // minor units
	Kind        PaymentKind   `json:"kind"`
	Provider    string        `json:"provider"`
	ProviderRef string        `json:"provider_ref,omitempty"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	ProcessedAt *time.Time    `json:"processed_at,omitempty"`
}

// IsTerminal reports whether the payment reached a final state.
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusSucceeded || p.Status == PaymentStatusFailed
}

// CanTransitionTo enforces the bounded status machine.
func (p *Payment) CanTransitionTo(next PaymentStatus) bool {
	switch p.Status {
	case PaymentStatusPending:
		return next == PaymentStatusProcessing
	case PaymentStatusProcessing:
		return next == PaymentStatusSucceeded || next == PaymentStatusFailed
	default:
		return false
	}
}
