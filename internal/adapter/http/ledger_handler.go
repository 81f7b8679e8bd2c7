package http

import (
	"fmt"

	"auction-ledger/internal/adapter/http/dto"
	"auction-ledger/internal/core/domain"
	"auction-ledger/internal/core/ports"
	"auction-ledger/pkg/apperror"
	"auction-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// LedgerHandler serves the read-only audit trail endpoints.
type LedgerHandler struct {
	ledgerSvc ports.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerSvc ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

// Chain handles GET /api/v1/ledger.
func (h *LedgerHandler) Chain(c *gin.Context) {
	blocks, err := h.ledgerSvc.Chain(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toChainResponse(blocks))
}

// Head handles GET /api/v1/ledger/head.
func (h *LedgerHandler) Head(c *gin.Context) {
	head, err := h.ledgerSvc.Head(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if head == nil {
		response.Error(c, apperror.ErrNotFound("chain head"))
		return
	}
	response.OK(c, dto.FromBlock(head))
}

// Validate handles GET /api/v1/ledger/validate.
func (h *LedgerHandler) Validate(c *gin.Context) {
	valid, err := h.ledgerSvc.ValidateChain(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	blocks, err := h.ledgerSvc.Chain(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ValidateResponse{Valid: valid, Length: int64(len(blocks))})
}

// AppendEvent handles POST /api/v1/ledger/events. The auth layer in front of
// this service records its user events here; the remaining event types are
// appended only by the auction and payment services.
func (h *LedgerHandler) AppendEvent(c *gin.Context) {
	var req dto.AppendEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	et := domain.EventType(req.EventType)
	if !domain.ValidEventType(et) {
		response.Error(c, apperror.ErrInvalidEventType(req.EventType))
		return
	}
	if !domain.IsCollaboratorEvent(et) {
		response.Error(c, apperror.Validation(fmt.Sprintf("event type %s is recorded internally", et)))
		return
	}

	block, err := h.ledgerSvc.Append(c.Request.Context(), et, req.Payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.FromBlock(block))
}

// Events handles GET /api/v1/ledger/events?type=BID_PLACED. Without a type
// filter it returns the whole chain.
func (h *LedgerHandler) Events(c *gin.Context) {
	blocks, err := h.ledgerSvc.Chain(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if typeFilter := c.Query("type"); typeFilter != "" {
		et := domain.EventType(typeFilter)
		if !domain.ValidEventType(et) {
			response.Error(c, apperror.ErrInvalidEventType(typeFilter))
			return
		}
		filtered := blocks[:0:0]
		for _, b := range blocks {
			if b.EventType == et {
				filtered = append(filtered, b)
			}
		}
		blocks = filtered
	}

	response.OK(c, toChainResponse(blocks))
}

func toChainResponse(blocks []domain.LedgerBlock) dto.ChainResponse {
	resp := dto.ChainResponse{
		Length: int64(len(blocks)),
		Blocks: make([]dto.BlockResponse, 0, len(blocks)),
	}
	for i := range blocks {
		resp.Blocks = append(resp.Blocks, dto.FromBlock(&blocks[i]))
	}
	return resp
}
