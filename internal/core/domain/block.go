package domain

import (
	"strings"
	"time"
)

// EventType identifies the semantic kind of a ledger event.
type EventType string

const (
	EventUserRegistered   EventType = "USER_REGISTERED"
	EventUserLoggedIn     EventType = "USER_LOGGED_IN"
	EventUserLoggedOut    EventType = "USER_LOGGED_OUT"
	EventItemCreated      EventType = "ITEM_CREATED"
	EventBidPlaced        EventType = "BID_PLACED"
	EventAuctionActivated EventType = "AUCTION_ACTIVATED"
	EventPaymentInitiated EventType = "PAYMENT_INITIATED"
	EventPaymentRecorded  EventType = "PAYMENT_RECORDED"
)

// GenesisPreviousHash is the previous-hash sentinel of the first block.
var GenesisPreviousHash = strings.Repeat("0", 64)

// Payload is the per-event data recorded in a block. Values are strings only
// so the canonical serialization is identical before and after a JSONB round
// trip (no float64 re-typing of numbers).
type Payload map[string]string

// Clone returns a shallow copy. Blocks are immutable once created; callers
// building payloads from shared maps must not alias them into a block.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// LedgerBlock is one immutable, hash-linked record of a domain event.
// Blocks are created exactly once by the ledger service and never mutated.
type LedgerBlock struct {
	Index        int64     `json:"index"`
	Timestamp    time.Time `json:"timestamp"`
	EventType    EventType `json:"event_type"`
	Payload      Payload   `json:"payload"`
	PreviousHash string    `json:"previous_hash"`
	Nonce        int64     `json:"nonce"` // reserved, always 0 for now
	Hash         string    `json:"hash"`
}

// IsGenesis reports whether this is the first block of the chain.
func (b *LedgerBlock) IsGenesis() bool {
	return b.Index == 0
}

// LinksTo reports whether this block correctly chains off prev.
// For the genesis block prev must be nil.
func (b *LedgerBlock) LinksTo(prev *LedgerBlock) bool {
	if prev == nil {
		return b.Index == 0 && b.PreviousHash == GenesisPreviousHash
	}
	return b.Index == prev.Index+1 && b.PreviousHash == prev.Hash
}
