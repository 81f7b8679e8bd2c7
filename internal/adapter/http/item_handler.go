package http

import (
	"auction-ledger/internal/adapter/http/dto"
	"auction-ledger/internal/core/ports"
	"auction-ledger/pkg/apperror"
	"auction-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ItemHandler serves the auction item endpoints.
type ItemHandler struct {
	auctionSvc ports.AuctionService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(auctionSvc ports.AuctionService) *ItemHandler {
	return &ItemHandler{auctionSvc: auctionSvc}
}

// Create handles POST /api/v1/items.
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	item, err := h.auctionSvc.CreateItem(c.Request.Context(), ports.CreateItemRequest{
		OwnerID:       userID(c),
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		StartingPrice: req.StartingPrice,
		BuyNowPrice:   req.BuyNowPrice,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.FromItem(item))
}

// List handles GET /api/v1/items.
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.auctionSvc.ListOpenItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.FromItem(&items[i]))
	}
	response.OK(c, resp)
}

// Get handles GET /api/v1/items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid item id"))
		return
	}

	detail, err := h.auctionSvc.GetItem(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.ItemDetailResponse{
		Item: dto.FromItem(detail.Item),
		Bids: make([]dto.BidResponse, 0, len(detail.Bids)),
	}
	for i := range detail.Bids {
		resp.Bids = append(resp.Bids, dto.FromBid(&detail.Bids[i]))
	}
	if detail.HighestBid != nil {
		highest := dto.FromBid(detail.HighestBid)
		resp.HighestBid = &highest
	}
	response.OK(c, resp)
}

// Join handles POST /api/v1/items/:id/join.
func (h *ItemHandler) Join(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid item id"))
		return
	}

	item, err := h.auctionSvc.Join(c.Request.Context(), itemID, userID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromItem(item))
}

// PlaceBid handles POST /api/v1/items/:id/bids.
func (h *ItemHandler) PlaceBid(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid item id"))
		return
	}

	var req dto.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	bid, err := h.auctionSvc.PlaceBid(c.Request.Context(), ports.PlaceBidRequest{
		ItemID:   itemID,
		BidderID: userID(c),
		Amount:   req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.FromBid(bid))
}

// Activate handles POST /api/v1/items/:id/activate.
func (h *ItemHandler) Activate(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid item id"))
		return
	}

	item, err := h.auctionSvc.TryActivate(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromItem(item))
}
