// Package extract orchestrates the price list extraction pipeline:
// acquire a PDF, pull out its content, and hand it to the completion
// client. The service owns the temporary document lifecycle.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pricelens/pricelist-extractor/internal/domain"
)

// Options holds pipeline settings.
type Options struct {
	// TempDir is where temporary documents are written. Defaults to
	// the OS temp directory.
	TempDir string
	// Inline embeds the raw PDF bytes in the model request instead of
	// extracting text first.
	Inline bool
}

// Service runs the acquire -> extract -> complete pipeline. Each
// request is independent; the service holds no cross-request state.
type Service struct {
	renderer domain.Renderer
	text     domain.TextExtractor
	llm      domain.PriceListClient
	logger   zerolog.Logger
	tempDir  string
	inline   bool
}

// NewService creates a new extraction service with explicit
// collaborators so tests can substitute fakes.
func NewService(renderer domain.Renderer, text domain.TextExtractor, llm domain.PriceListClient, logger zerolog.Logger, opts Options) *Service {
	tempDir := opts.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Service{
		renderer: renderer,
		text:     text,
		llm:      llm,
		logger:   logger.With().Str("component", "extract").Logger(),
		tempDir:  tempDir,
		inline:   opts.Inline,
	}
}

// ExtractFromURL renders the page at rawURL to a temporary PDF and
// extracts a price list from it. The temporary document is deleted
// before the call returns, whatever the outcome.
func (s *Service) ExtractFromURL(ctx context.Context, rawURL string) (string, error) {
	s.logger.Info().Str("url", rawURL).Msg("acquiring document")

	pdfBytes, err := s.renderer.RenderPDF(ctx, rawURL)
	if err != nil {
		return "", err
	}

	path, err := s.saveTemp(bytes.NewReader(pdfBytes))
	if err != nil {
		return "", err
	}
	defer s.cleanup(path)

	return s.extract(ctx, path)
}

// ExtractFromUpload saves the uploaded document to a temporary PDF and
// extracts a price list from it, with the same cleanup guarantee.
func (s *Service) ExtractFromUpload(ctx context.Context, r io.Reader) (string, error) {
	path, err := s.saveTemp(r)
	if err != nil {
		return "", err
	}
	defer s.cleanup(path)

	return s.extract(ctx, path)
}

func (s *Service) extract(ctx context.Context, path string) (string, error) {
	var doc domain.Document
	if s.inline {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", domain.IOError("failed to read document", err)
		}
		doc.Raw = raw
	} else {
		text, err := s.text.Text(path)
		if err != nil {
			return "", err
		}
		doc.Text = text
	}

	result, err := s.llm.ExtractPriceList(ctx, doc)
	if err != nil {
		return "", err
	}

	s.logger.Info().Int("result_bytes", len(result)).Msg("extraction complete")
	return result, nil
}

// saveTemp writes r to a collision-free path inside the temp dir.
func (s *Service) saveTemp(r io.Reader) (string, error) {
	path := filepath.Join(s.tempDir, fmt.Sprintf("pricelist-%s.pdf", uuid.New().String()))

	f, err := os.Create(path)
	if err != nil {
		return "", domain.IOError("failed to create temporary document", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		s.cleanup(path)
		return "", domain.IOError("failed to write temporary document", err)
	}
	if err := f.Close(); err != nil {
		s.cleanup(path)
		return "", domain.IOError("failed to write temporary document", err)
	}

	return path, nil
}

// cleanup removes a temporary document. Idempotent; a failure is
// logged and swallowed so cleanup never masks the pipeline result.
func (s *Service) cleanup(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to remove temporary document")
	}
}
