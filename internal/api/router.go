package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stepaks675/sproutcard/internal/api/handlers"
	custommiddleware "github.com/stepaks675/sproutcard/internal/api/middleware"
	"github.com/stepaks675/sproutcard/internal/config"
	"github.com/stepaks675/sproutcard/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(systemService *service.SystemService, recapService *service.RecapService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Put("/provider-key", systemHandler.SetProviderKey)
		})

		r.Route("/recap", func(r chi.Router) {
			recapHandler := handlers.NewRecapHandler(recapService)
			r.Post("/", recapHandler.CreateRecap)

			r.Route("/{recapId}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateRecapIDMiddleware)
				r.Get("/", recapHandler.GetRecap)
			})
		})
	})

	return r
}
