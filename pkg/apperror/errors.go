package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Auction Business Rules (AUC) ----

func ErrBidTooLow(minAllowed string) *AppError {
	return New("AUC_001", fmt.Sprintf("Bid must be at least %s", minAllowed), http.StatusUnprocessableEntity)
}

func ErrAuctionNotAcceptingBids() *AppError {
	return New("AUC_002", "Auction is not accepting bids", http.StatusConflict)
}

func ErrInsufficientParticipants(min int) *AppError {
	return New("AUC_003", fmt.Sprintf("At least %d participants are required to start bidding", min), http.StatusConflict)
}

func ErrBuyNowUnavailable() *AppError {
	return New("AUC_004", "Buy now is not available for this item", http.StatusConflict)
}

func ErrNotHighestBidder() *AppError {
	return New("AUC_005", "Only the highest bidder can pay for this item", http.StatusForbidden)
}

func ErrInvalidAmount() *AppError {
	return New("AUC_006", "Invalid amount", http.StatusBadRequest)
}

func ErrNoBids() *AppError {
	return New("AUC_007", "No bids have been placed on this item", http.StatusConflict)
}

// ---- Payment Lifecycle (PAY) ----

func ErrInvalidPaymentState(status string) *AppError {
	return New("PAY_001", fmt.Sprintf("Payment cannot transition from status %q", status), http.StatusConflict)
}

func ErrProviderRefMismatch() *AppError {
	return New("PAY_002", "Provider reference does not match payment", http.StatusForbidden)
}

func ErrInvalidCallbackToken() *AppError {
	return New("PAY_003", "Invalid or expired provider callback token", http.StatusUnauthorized)
}

// ---- Ledger Integrity & Storage (LGR) ----

func ErrInvalidEventType(eventType string) *AppError {
	return New("LGR_001", fmt.Sprintf("Unknown ledger event type %q", eventType), http.StatusBadRequest)
}

func ErrInvalidPayload(reason string) *AppError {
	return New("LGR_002", fmt.Sprintf("Invalid event payload: %s", reason), http.StatusBadRequest)
}

func ErrStorageUnavailable(err error) *AppError {
	return Wrap("LGR_003", "Ledger storage unavailable, nothing was committed", http.StatusServiceUnavailable, err)
}

// ---- Generic (SYS) ----

func ErrNotFound(entity string) *AppError {
	return New("SYS_404", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request-validation error.
func Validation(message string) *AppError {
	return New("SYS_002", message, http.StatusBadRequest)
}
