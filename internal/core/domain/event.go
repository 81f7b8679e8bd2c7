package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// requiredPayloadKeys defines, per event type, the keys a payload must carry.
// Unknown extra keys are rejected so the hashed field set stays canonical.
var requiredPayloadKeys = map[EventType][]string{
	EventUserRegistered:   {"user_id", "username"},
	EventUserLoggedIn:     {"user_id"},
	EventUserLoggedOut:    {"user_id"},
	EventItemCreated:      {"item_id", "owner_id"},
	EventBidPlaced:        {"item_id", "bidder_id", "amount"},
	EventAuctionActivated: {"item_id", "activated_at"},
	EventPaymentInitiated: {"item_id", "buyer_id", "payment_id", "amount"},
	EventPaymentRecorded:  {"item_id", "buyer_id", "payment_id", "amount", "provider_ref"},
}

// ValidEventType reports whether et is a known ledger event type.
func ValidEventType(et EventType) bool {
	_, ok := requiredPayloadKeys[et]
	return ok
}

// IsCollaboratorEvent reports whether the event type may be recorded by the
// auth layer in front of this service. The remaining types are written only
// by the auction and payment services themselves.
func IsCollaboratorEvent(et EventType) bool {
	switch et {
	case EventUserRegistered, EventUserLoggedIn, EventUserLoggedOut:
		return true
	default:
		return false
	}
}

// ValidatePayload checks a payload against the schema of its event type.
// It is called at block construction so the hash always covers a known,
// complete field set.
func ValidatePayload(et EventType, p Payload) error {
	keys, ok := requiredPayloadKeys[et]
	if !ok {
		return fmt.Errorf("unknown event type %q", et)
	}
	for _, k := range keys {
		if _, present := p[k]; !present {
			return fmt.Errorf("event %s: missing payload key %q", et, k)
		}
	}
	if len(p) != len(keys) {
		for k := range p {
			if !containsKey(keys, k) {
				return fmt.Errorf("event %s: unexpected payload key %q", et, k)
			}
		}
	}
	return nil
}

func containsKey(keys []string, k string) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}

// NewItemCreatedPayload builds the ITEM_CREATED payload.
func NewItemCreatedPayload(itemID, ownerID uuid.UUID) Payload {
	return Payload{
		"item_id":  itemID.String(),
		"owner_id": ownerID.String(),
	}
}

// NewBidPlacedPayload builds the BID_PLACED payload.
func NewBidPlacedPayload(itemID, bidderID uuid.UUID, amount int64) Payload {
	return Payload{
		"item_id":   itemID.String(),
		"bidder_id": bidderID.String(),
		"amount":    FormatAmount(amount),
	}
}

// NewAuctionActivatedPayload builds the AUCTION_ACTIVATED payload.
func NewAuctionActivatedPayload(itemID uuid.UUID, activatedAt string) Payload {
	return Payload{
		"item_id":      itemID.String(),
		"activated_at": activatedAt,
	}
}

// NewPaymentInitiatedPayload builds the PAYMENT_INITIATED payload.
func NewPaymentInitiatedPayload(itemID, buyerID, paymentID uuid.UUID, amount int64) Payload {
	return Payload{
		"item_id":    itemID.String(),
		"buyer_id":   buyerID.String(),
		"payment_id": paymentID.String(),
		"amount":     FormatAmount(amount),
	}
}

// NewPaymentRecordedPayload builds the PAYMENT_RECORDED payload.
func NewPaymentRecordedPayload(itemID, buyerID, paymentID uuid.UUID, amount int64, providerRef string) Payload {
	return Payload{
		"item_id":      itemID.String(),
		"buyer_id":     buyerID.String(),
		"payment_id":   paymentID.String(),
		"amount":       FormatAmount(amount),
		"provider_ref": providerRef,
	}
}
