package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuctionItem is the aggregate root for an auction listing. Its bids,
// participants and payments are bound to its lifecycle.
type AuctionItem struct {
	ID            uuid.UUID  `json:"id"`
	OwnerID       uuid.UUID  `json:"owner_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Address       string     `json:"address,omitempty"` // pickup/shipping address
	StartingPrice int64      `json:"starting_price"`    // minor units, > 0
	BuyNowPrice   *int64     `json:"buy_now_price,omitempty"`
	StartsAt      time.Time  `json:"starts_at"`
	EndsAt        *time.Time `json:"ends_at,omitempty"` // nil until activation fixes it
	IsActive      bool       `json:"is_active"`         // monotone: never reverts to false
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CanAcceptBids reports whether the item accepts bids at the given instant.
// Pending items (not yet activated) accept provisional bids inside the window.
func (i *AuctionItem) CanAcceptBids(now time.Time) bool {
	if now.Before(i.StartsAt) {
		return false
	}
	if i.EndsAt != nil && !now.Before(*i.EndsAt) {
		return false
	}
	return true
}

// IsClosed reports whether the bidding window has passed.
func (i *AuctionItem) IsClosed(now time.Time) bool {
	return i.EndsAt != nil && !now.Before(*i.EndsAt)
}

// HasBuyNow reports whether the item can be bought outright.
func (i *AuctionItem) HasBuyNow() bool {
	return i.BuyNowPrice != nil && *i.BuyNowPrice > 0
}
