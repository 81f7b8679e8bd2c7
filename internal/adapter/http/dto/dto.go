package dto

import (
	"time"

	"auction-ledger/internal/core/domain"
)

// CreateItemRequest is the listing request body. Prices are minor units.
type CreateItemRequest struct {
	Title         string     `json:"title" binding:"required,max=200"`
	Description   string     `json:"description" binding:"max=2000"`
	Address       string     `json:"address" binding:"max=500"`
	StartingPrice int64      `json:"starting_price" binding:"required,gt=0"`
	BuyNowPrice   *int64     `json:"buy_now_price" binding:"omitempty,gt=0"`
	StartsAt      *time.Time `json:"starts_at"`
	EndsAt        *time.Time `json:"ends_at"`
}

// PlaceBidRequest is the bid request body.
type PlaceBidRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// StartPaymentRequest selects the purchase flow.
type StartPaymentRequest struct {
	Kind string `json:"kind" binding:"required,oneof=winning_bid buy_now"`
}

// FailPaymentRequest carries the provider's failure reason.
type FailPaymentRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// AppendEventRequest records a collaborator event in the ledger.
type AppendEventRequest struct {
	EventType string         `json:"event_type" binding:"required"`
	Payload   domain.Payload `json:"payload" binding:"required"`
}

// ItemResponse is the item representation returned by the API.
type ItemResponse struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Address       string     `json:"address,omitempty"`
	StartingPrice string     `json:"starting_price"`
	BuyNowPrice   *string    `json:"buy_now_price,omitempty"`
	StartsAt      time.Time  `json:"starts_at"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	IsActive      bool       `json:"is_active"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// BidResponse is the bid representation returned by the API.
type BidResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemDetailResponse bundles an item with its bid state.
type ItemDetailResponse struct {
	Item       ItemResponse  `json:"item"`
	Bids       []BidResponse `json:"bids"`
	HighestBid *BidResponse  `json:"highest_bid,omitempty"`
}

// PaymentResponse is the payment representation returned by the API. The
// callback token is present only on the response that opens the payment.
type PaymentResponse struct {
	ID            string     `json:"id"`
	ItemID        string     `json:"item_id"`
	BuyerID       string     `json:"buyer_id"`
	Amount        string     `json:"amount"`
	Kind          string     `json:"kind"`
	Provider      string     `json:"provider"`
	ProviderRef   string     `json:"provider_ref,omitempty"`
	Status        string     `json:"status"`
	CallbackToken string     `json:"callback_token,omitempty"`
	TokenExpires  *time.Time `json:"token_expires_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

// BlockResponse is the ledger block representation returned by the API.
type BlockResponse struct {
	Index        int64          `json:"index"`
	Timestamp    time.Time      `json:"timestamp"`
	EventType    string         `json:"event_type"`
	Payload      domain.Payload `json:"payload"`
	PreviousHash string         `json:"previous_hash"`
	Nonce        int64          `json:"nonce"`
	Hash         string         `json:"hash"`
}

// ChainResponse wraps the full chain.
type ChainResponse struct {
	Length int64           `json:"length"`
	Blocks []BlockResponse `json:"blocks"`
}

// ValidateResponse reports the integrity check outcome.
type ValidateResponse struct {
	Valid  bool  `json:"valid"`
	Length int64 `json:"length"`
}

// FromItem converts a domain item.
func FromItem(i *domain.AuctionItem) ItemResponse {
	resp := ItemResponse{
		ID:            i.ID.String(),
		OwnerID:       i.OwnerID.String(),
		Title:         i.Title,
		Description:   i.Description,
		Address:       i.Address,
		StartingPrice: domain.FormatAmount(i.StartingPrice),
		StartsAt:      i.StartsAt,
		EndsAt:        i.EndsAt,
		IsActive:      i.IsActive,
		ActivatedAt:   i.ActivatedAt,
		CreatedAt:     i.CreatedAt,
	}
	if i.BuyNowPrice != nil {
		s := domain.FormatAmount(*i.BuyNowPrice)
		resp.BuyNowPrice = &s
	}
	return resp
}

// FromBid converts a domain bid.
func FromBid(b *domain.Bid) BidResponse {
	return BidResponse{
		ID:        b.ID.String(),
		ItemID:    b.ItemID.String(),
		BidderID:  b.BidderID.String(),
		Amount:    domain.FormatAmount(b.Amount),
		CreatedAt: b.CreatedAt,
	}
}

// FromPayment converts a domain payment.
func FromPayment(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID.String(),
		ItemID:      p.ItemID.String(),
		BuyerID:     p.BuyerID.String(),
		Amount:      domain.FormatAmount(p.Amount),
		Kind:        string(p.Kind),
		Provider:    p.Provider,
		ProviderRef: p.ProviderRef,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		ProcessedAt: p.ProcessedAt,
	}
}

// FromBlock converts a domain ledger block.
func FromBlock(b *domain.LedgerBlock) BlockResponse {
	return BlockResponse{
		Index:        b.Index,
		Timestamp:    b.Timestamp,
		EventType:    string(b.EventType),
		Payload:      b.Payload,
		PreviousHash: b.PreviousHash,
		Nonce:        b.Nonce,
		Hash:         b.Hash,
	}
}
