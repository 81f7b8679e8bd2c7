package http

import (
	"errors"
	"io"
	"strings"

	"auction-ledger/internal/adapter/http/dto"
	"auction-ledger/internal/core/domain"
	"auction-ledger/internal/core/ports"
	"auction-ledger/pkg/apperror"
	"auction-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentHandler serves the payment endpoints. Confirm and Fail are the
// provider-facing callbacks, authenticated with the signed token issued when
// the payment was opened.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
	tokenSvc   ports.CallbackTokenService
	log        zerolog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc ports.PaymentService, tokenSvc ports.CallbackTokenService, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc, tokenSvc: tokenSvc, log: log}
}

// Start handles POST /api/v1/items/:id/payments.
func (h *PaymentHandler) Start(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid item id"))
		return
	}

	var req dto.StartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	payment, err := h.paymentSvc.StartPayment(c.Request.Context(), ports.StartPaymentRequest{
		ItemID:  itemID,
		BuyerID: userID(c),
		Kind:    domain.PaymentKind(req.Kind),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.FromPayment(payment)
	token, expiresAt, err := h.tokenSvc.Generate(payment.ID, payment.ProviderRef)
	if err != nil {
		h.log.Error().Err(err).Str("payment_id", payment.ID.String()).Msg("failed to sign callback token")
		response.Error(c, apperror.InternalError(err))
		return
	}
	resp.CallbackToken = token
	resp.TokenExpires = &expiresAt

	response.Created(c, resp)
}

// callbackClaims authenticates a provider callback and binds it to the
// payment in the path.
func (h *PaymentHandler) callbackClaims(c *gin.Context) (*ports.CallbackClaims, bool) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid payment id"))
		return nil, false
	}

	auth := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		response.Error(c, apperror.ErrInvalidCallbackToken())
		return nil, false
	}

	claims, err := h.tokenSvc.Validate(token)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	if claims.PaymentID != paymentID {
		response.Error(c, apperror.ErrInvalidCallbackToken())
		return nil, false
	}
	return claims, true
}

// Confirm handles POST /api/v1/payments/:id/confirm.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	claims, ok := h.callbackClaims(c)
	if !ok {
		return
	}

	payment, err := h.paymentSvc.ConfirmPayment(c.Request.Context(), claims.PaymentID, claims.ProviderRef)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromPayment(payment))
}

// Fail handles POST /api/v1/payments/:id/fail.
func (h *PaymentHandler) Fail(c *gin.Context) {
	claims, ok := h.callbackClaims(c)
	if !ok {
		return
	}

	// The failure reason is optional; a bodyless callback is fine.
	var req dto.FailPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	payment, err := h.paymentSvc.FailPayment(c.Request.Context(), claims.PaymentID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromPayment(payment))
}
