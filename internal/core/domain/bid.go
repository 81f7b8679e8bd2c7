package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bid is immutable once accepted; bids are never edited or removed.
type Bid struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	BidderID  uuid.UUID `json:"bidder_id"`
	Amount    int64     `json:"amount"` // minor units, positive
	CreatedAt time.Time `json:"created_at"`
}

// Outbids reports whether this bid stands above other under the tie-break
// rule: higher amount wins, equal amounts go to the earlier bid.
func (b *Bid) Outbids(other *Bid) bool {
	if other == nil {
		return true
	}
	if b.Amount != other.Amount {
		return b.Amount > other.Amount
	}
	return b.CreatedAt.Before(other.CreatedAt)
}

// Participant records that a user joined an auction. One row per (item, user).
type Participant struct {
	ItemID   uuid.UUID `json:"item_id"`
	UserID   uuid.UUID `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}
