package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/etenderhq/etender-backend-go/internal/domain/auth"
	"github.com/etenderhq/etender-backend-go/internal/domain/bid"
	"github.com/etenderhq/etender-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BidHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type BidHandlerImpl struct {
	bidService bid.BidService
}

func NewBidHandler(bidService bid.BidService) BidHandler {
	return &BidHandlerImpl{
		bidService: bidService,
	}
}

// Create implements BidHandler.
func (h *BidHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq bid.CreateRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateBid decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	caller, ok := identityFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	created, err := h.bidService.Create(r.Context(), caller, createReq)
	if err != nil {
		slog.Error("CreateBid service error", "error", err, "tender_id", createReq.TenderID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bid submitted successfully", created)
}

// Update implements BidHandler.
func (h *BidHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	bidID := chi.URLParam(r, "id")

	var updateReq bid.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateBid decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	caller, ok := identityFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	updated, err := h.bidService.Update(r.Context(), caller, bidID, updateReq)
	if err != nil {
		slog.Error("UpdateBid service error", "error", err, "bid_id", bidID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bid updated successfully", updated)
}
