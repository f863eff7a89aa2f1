// Package handlers provides HTTP handlers for the price list API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pricelens/pricelist-extractor/internal/urlcheck"
)

// ExtractService is the pipeline surface the handlers depend on.
type ExtractService interface {
	ExtractFromURL(ctx context.Context, url string) (string, error)
	ExtractFromUpload(ctx context.Context, r io.Reader) (string, error)
}

// ExtractHandler handles price list extraction requests.
type ExtractHandler struct {
	logger         zerolog.Logger
	service        ExtractService
	maxUploadBytes int64
}

// NewExtractHandler creates a new extraction handler.
func NewExtractHandler(logger zerolog.Logger, service ExtractService, maxUploadBytes int64) *ExtractHandler {
	return &ExtractHandler{
		logger:         logger.With().Str("component", "handlers").Logger(),
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

type extractURLRequest struct {
	URL string `json:"url"`
}

type extractResponse struct {
	Success   bool   `json:"success"`
	PriceList string `json:"priceList"`
}

// ExtractURL handles POST /api/extract-url.
func (h *ExtractHandler) ExtractURL(w http.ResponseWriter, r *http.Request) {
	var req extractURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	if !urlcheck.Allowed(req.URL) {
		writeError(w, http.StatusBadRequest, "invalid or disallowed url")
		return
	}

	result, err := h.service.ExtractFromURL(r.Context(), req.URL)
	if err != nil {
		// Internal detail stays in the log; the response is generic.
		h.logger.Error().Err(err).Str("url", req.URL).Msg("url extraction failed")
		writeError(w, http.StatusInternalServerError, "extraction failed")
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{Success: true, PriceList: result})
}

// ExtractFile handles POST /api/extract-file.
func (h *ExtractHandler) ExtractFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	h.logger.Info().
		Str("filename", header.Filename).
		Int64("size", header.Size).
		Msg("processing upload")

	result, err := h.service.ExtractFromUpload(r.Context(), file)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("file extraction failed")
		writeError(w, http.StatusInternalServerError, "extraction failed")
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{Success: true, PriceList: result})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
