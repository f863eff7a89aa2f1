package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/pricelens/pricelist-extractor/internal/config"
)

type stubService struct {
	result string
	err    error
}

func (s *stubService) ExtractFromURL(ctx context.Context, url string) (string, error) {
	return s.result, s.err
}

func (s *stubService) ExtractFromUpload(ctx context.Context, r io.Reader) (string, error) {
	return s.result, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			RequestTimeout: time.Minute,
		},
		Auth: config.AuthConfig{
			BearerToken: "sekrit",
		},
		Upload: config.UploadConfig{
			MaxBytes: 1 << 20,
		},
		RateLimit: config.RateLimitConfig{
			Requests: 100,
			Window:   time.Minute,
		},
	}
}

func TestRouterHealthOpen(t *testing.T) {
	router := NewRouter(zerolog.Nop(), testConfig(), &stubService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterAuthRequired(t *testing.T) {
	router := NewRouter(zerolog.Nop(), testConfig(), &stubService{result: "| a | b | c |"})

	req := httptest.NewRequest(http.MethodPost, "/api/extract-url",
		strings.NewReader(`{"url":"https://example.com"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/extract-url",
		strings.NewReader(`{"url":"https://example.com"}`))
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/extract-url",
		strings.NewReader(`{"url":"https://example.com"}`))
	req.Header.Set("Authorization", "Bearer sekrit")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterRateLimitApplies(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.Requests = 2

	router := NewRouter(zerolog.Nop(), cfg, &stubService{result: "ok"})

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/extract-url",
			strings.NewReader(`{"url":"https://example.com"}`))
		req.Header.Set("Authorization", "Bearer sekrit")
		req.RemoteAddr = "10.9.8.7:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}
