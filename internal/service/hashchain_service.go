package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"auction-ledger/internal/core/domain"
)

// SHA256ChainHasher implements ports.ChainHasher.
//
// The digest covers the canonical JSON serialization of the five chained
// fields. encoding/json sorts map keys, and payload values are strings only,
// so the same block always serializes to the same bytes regardless of
// process, platform, or the iteration order of the payload map.
type SHA256ChainHasher struct{}

// NewSHA256ChainHasher creates the hasher.
func NewSHA256ChainHasher() *SHA256ChainHasher {
	return &SHA256ChainHasher{}
}

// Digest computes the 64-hex-char SHA-256 digest of a block's canonical fields.
// Timestamps are normalized to UTC RFC3339Nano; callers stamp them truncated
// to microseconds so the digest survives a timestamptz round trip.
func (h *SHA256ChainHasher) Digest(
	index int64,
	timestamp time.Time,
	eventType domain.EventType,
	payload domain.Payload,
	previousHash string,
) string {
	canonical := map[string]any{
		"index":         index,
		"timestamp":     timestamp.UTC().Format(time.RFC3339Nano),
		"event_type":    string(eventType),
		"payload":       payload,
		"previous_hash": previousHash,
	}

	// Marshaling a map of primitives cannot fail.
	data, _ := json.Marshal(canonical)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// BlockDigest recomputes the expected hash of an existing block.
func (h *SHA256ChainHasher) BlockDigest(b *domain.LedgerBlock) string {
	return h.Digest(b.Index, b.Timestamp, b.EventType, b.Payload, b.PreviousHash)
}
