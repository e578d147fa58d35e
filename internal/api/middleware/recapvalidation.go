// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stepaks675/sproutcard/internal/api/response"
	"github.com/stepaks675/sproutcard/internal/validation"
)

// ValidateRecapIDMiddleware validates that the recapId URL parameter is
// present and is a valid UUID. Returns 400 Bad Request otherwise, so the
// repository never sees a malformed share ID.
//
// Example usage in router:
//
//	r.Route("/{recapId}", func(r chi.Router) {
//	    r.Use(middleware.ValidateRecapIDMiddleware)
//	    r.Get("/", handler.GetRecap)
//	})
func ValidateRecapIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recapID := chi.URLParam(r, "recapId")

		if recapID == "" {
			response.RespondError(w, http.StatusBadRequest, "valid recap ID is required", "")
			return
		}

		if err := validation.ValidateRecapID(recapID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid recap ID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
