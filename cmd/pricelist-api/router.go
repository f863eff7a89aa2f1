// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/pricelens/pricelist-extractor/cmd/pricelist-api/handlers"
	"github.com/pricelens/pricelist-extractor/cmd/pricelist-api/middleware"
	"github.com/pricelens/pricelist-extractor/internal/config"
)

// NewRouter creates the API router with all routes configured.
func NewRouter(logger zerolog.Logger, cfg *config.Config, service handlers.ExtractService) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	// Health check (unauthenticated, not rate limited)
	r.Get("/health", handlers.Health)

	extractHandler := handlers.NewExtractHandler(logger, service, cfg.Upload.MaxBytes)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
		r.Use(middleware.BearerAuth(cfg.Auth.BearerToken))
		r.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))

		r.Post("/extract-url", extractHandler.ExtractURL)
		r.Post("/extract-file", extractHandler.ExtractFile)
	})

	return r
}
