package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stepaks675/sproutcard/internal/apperrors"
	"github.com/stepaks675/sproutcard/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	// Check database health
	if err := h.systemService.CheckHealth(); err != nil {
		response := HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		}
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	// System is healthy
	response := HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	respondJSON(w, http.StatusOK, response)
}

// VersionResponse represents the version check response
type VersionResponse struct {
	AppVersion string `json:"app_version"`
}

// Version handles GET requests to retrieve the application version.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionResponse
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, VersionResponse{
		AppVersion: h.systemService.CheckVersion(),
	})
}

// ProviderKeyRequest is the body of PUT /api/system/provider-key.
type ProviderKeyRequest struct {
	APIKey string `json:"apiKey"`
}

// SetProviderKey rotates the swap-data provider credential. The key is
// stored encrypted and the running provider client switches to it
// immediately.
//
// Endpoint: PUT /api/system/provider-key
// Response: 204 No Content
// Error: 400 on an empty key, 409 when no encryption key is configured
func (h *SystemHandler) SetProviderKey(w http.ResponseWriter, r *http.Request) {
	var req ProviderKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse := map[string]string{
			"error":  "invalid request body",
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusBadRequest, errorResponse)
		return
	}

	if req.APIKey == "" {
		errorResponse := map[string]string{
			"error": "apiKey is required",
		}
		respondJSON(w, http.StatusBadRequest, errorResponse)
		return
	}

	if err := h.systemService.SetProviderKey(r.Context(), req.APIKey); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, apperrors.ErrMissingFernetKey) {
			status = http.StatusConflict
		}
		errorResponse := map[string]string{
			"error":  "failed to store provider key",
			"detail": err.Error(),
		}
		respondJSON(w, status, errorResponse)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
