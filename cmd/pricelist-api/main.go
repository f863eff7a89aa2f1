// Package main provides the price list API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pricelens/pricelist-extractor/internal/config"
	"github.com/pricelens/pricelist-extractor/internal/extract"
	"github.com/pricelens/pricelist-extractor/internal/llm"
	"github.com/pricelens/pricelist-extractor/internal/observability"
	"github.com/pricelens/pricelist-extractor/internal/pdf"
	"github.com/pricelens/pricelist-extractor/internal/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: "pricelist-api",
	})

	logger.Info().
		Int("port", cfg.Server.Port).
		Str("model", cfg.LLM.Model).
		Str("extract_mode", string(cfg.Extract.Mode)).
		Msg("Starting price list API")

	renderOpts := []render.Option{render.WithTimeout(cfg.Render.Timeout)}
	if cfg.Render.ChromePath != "" {
		renderOpts = append(renderOpts, render.WithExecPath(cfg.Render.ChromePath))
	}
	if cfg.Render.NoSandbox {
		renderOpts = append(renderOpts, render.WithNoSandbox())
	}
	renderer := render.NewChrome(renderOpts...)

	llmClient, err := llm.NewClient(llm.Config{
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create completion client")
	}

	service := extract.NewService(renderer, pdf.NewExtractor(), llmClient, logger, extract.Options{
		TempDir: cfg.Upload.TempDir,
		Inline:  cfg.Extract.Mode == config.ModeInline,
	})

	router := NewRouter(logger, cfg, service)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt or error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}
