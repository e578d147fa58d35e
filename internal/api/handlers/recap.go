package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stepaks675/sproutcard/internal/apperrors"
	"github.com/stepaks675/sproutcard/internal/model"
	"github.com/stepaks675/sproutcard/internal/service"
	"github.com/stepaks675/sproutcard/internal/validation"
)

// RecapHandler handles recap-related HTTP requests
type RecapHandler struct {
	recapService *service.RecapService
}

// NewRecapHandler creates a new RecapHandler
func NewRecapHandler(recapService *service.RecapService) *RecapHandler {
	return &RecapHandler{
		recapService: recapService,
	}
}

// CreateRecapRequest is the body of POST /api/recap.
type CreateRecapRequest struct {
	Wallet string `json:"wallet"`
}

// RecapResponse represents a computed recap. The nested result shape is the
// contract the share-card frontend renders and must not change.
type RecapResponse struct {
	ID        string                `json:"id"`
	Wallet    string                `json:"wallet"`
	CreatedAt time.Time             `json:"createdAt"`
	Result    model.ValuationResult `json:"result"`
}

// CreateRecap computes and stores the trading recap for a wallet.
//
// Endpoint: POST /api/recap
// Response: 201 Created with RecapResponse
// Error: 400 on a malformed wallet address, 500 when the recap cannot be stored
func (h *RecapHandler) CreateRecap(w http.ResponseWriter, r *http.Request) {
	var req CreateRecapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse := map[string]string{
			"error":  "invalid request body",
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusBadRequest, errorResponse)
		return
	}

	if err := validation.ValidateWalletAddress(req.Wallet); err != nil {
		errorResponse := map[string]string{
			"error":  "invalid wallet address",
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusBadRequest, errorResponse)
		return
	}

	record, err := h.recapService.BuildRecap(r.Context(), req.Wallet)
	if err != nil {
		errorResponse := map[string]string{
			"error":  "failed to build recap",
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusCreated, RecapResponse{
		ID:        record.ID,
		Wallet:    record.Wallet,
		CreatedAt: record.CreatedAt,
		Result:    record.Result,
	})
}

// GetRecap serves a previously computed recap to the share page.
//
// Endpoint: GET /api/recap/{recapId}
// Response: 200 OK with RecapResponse
// Error: 404 when no recap exists for the ID
func (h *RecapHandler) GetRecap(w http.ResponseWriter, r *http.Request) {
	recapID := chi.URLParam(r, "recapId")

	record, err := h.recapService.GetRecap(recapID)
	if errors.Is(err, apperrors.ErrRecapNotFound) {
		errorResponse := map[string]string{
			"error": "recap not found",
		}
		respondJSON(w, http.StatusNotFound, errorResponse)
		return
	}
	if err != nil {
		errorResponse := map[string]string{
			"error":  "failed to retrieve recap",
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, RecapResponse{
		ID:        record.ID,
		Wallet:    record.Wallet,
		CreatedAt: record.CreatedAt,
		Result:    record.Result,
	})
}
