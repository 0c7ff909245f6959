package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/etenderhq/etender-backend-go/internal/domain/auth"
	"github.com/etenderhq/etender-backend-go/internal/domain/tender"
	"github.com/etenderhq/etender-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TenderHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Award(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetWithBids(w http.ResponseWriter, r *http.Request)
	MyTenders(w http.ResponseWriter, r *http.Request)
}

type TenderHandlerImpl struct {
	tenderService tender.TenderService
	companyID     string
}

func NewTenderHandler(tenderService tender.TenderService, companyID string) TenderHandler {
	return &TenderHandlerImpl{
		tenderService: tenderService,
		companyID:     companyID,
	}
}

// Create implements TenderHandler.
func (h *TenderHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq tender.CreateRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateTender decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.tenderService.Create(r.Context(), h.companyID, createReq)
	if err != nil {
		slog.Error("CreateTender service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tender created successfully", created)
}

// Update implements TenderHandler.
func (h *TenderHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	tenderID := chi.URLParam(r, "id")

	var updateReq tender.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateTender decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.tenderService.Update(r.Context(), h.companyID, tenderID, updateReq)
	if err != nil {
		slog.Error("UpdateTender service error", "error", err, "tender_id", tenderID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tender updated successfully", updated)
}

// Award implements TenderHandler.
func (h *TenderHandlerImpl) Award(w http.ResponseWriter, r *http.Request) {
	tenderID := chi.URLParam(r, "id")

	var awardReq tender.AwardRequest
	if err := json.NewDecoder(r.Body).Decode(&awardReq); err != nil {
		slog.Error("AwardTender decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	awarded, err := h.tenderService.Award(r.Context(), h.companyID, tenderID, awardReq.BidID)
	if err != nil {
		slog.Error("AwardTender service error", "error", err, "tender_id", tenderID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tender awarded successfully", awarded)
}

// List implements TenderHandler.
func (h *TenderHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	tenders, err := h.tenderService.List(r.Context(), h.companyID)
	if err != nil {
		slog.Error("ListTenders service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, tenders)
}

// GetWithBids implements TenderHandler.
func (h *TenderHandlerImpl) GetWithBids(w http.ResponseWriter, r *http.Request) {
	tenderID := chi.URLParam(r, "id")

	caller, ok := identityFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.tenderService.GetWithBids(r.Context(), tenderID, caller)
	if err != nil {
		slog.Error("GetTenderWithBids service error", "error", err, "tender_id", tenderID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyTenders implements TenderHandler.
func (h *TenderHandlerImpl) MyTenders(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	tenders, err := h.tenderService.MyTenders(r.Context(), caller)
	if err != nil {
		slog.Error("MyTenders service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, tenders)
}
