package llm

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// retryConfig holds retry configuration
type retryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func defaultRetryConfig() retryConfig {
	return retryConfig{
		MaxRetries:     2,
		InitialBackoff: time.Second,
		MaxBackoff:     15 * time.Second,
	}
}

// shouldRetry determines if a status code is retryable
func shouldRetry(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// retryableStatus extracts the HTTP status from a go-openai error, or
// zero when the error carries none (network failures, decode errors).
func retryableStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// calculateBackoff calculates exponential backoff duration
func calculateBackoff(attempt int, cfg retryConfig) time.Duration {
	backoff := float64(cfg.InitialBackoff) * math.Pow(2, float64(attempt))
	if backoff > float64(cfg.MaxBackoff) {
		backoff = float64(cfg.MaxBackoff)
	}
	return time.Duration(backoff)
}

// completeWithRetry wraps the completion call with bounded retry on
// rate-limit and server errors.
func (c *Client) completeWithRetry(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	var lastErr error
	var resp openai.ChatCompletionResponse

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return resp, ctx.Err()
		default:
		}

		resp, lastErr = c.api.CreateChatCompletion(ctx, req)
		if lastErr == nil {
			return resp, nil
		}

		status := retryableStatus(lastErr)
		if status != 0 && !shouldRetry(status) {
			return resp, lastErr
		}

		if attempt == c.retry.MaxRetries {
			break
		}

		backoff := calculateBackoff(attempt, c.retry)
		c.logger.Warn().
			Err(lastErr).
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Msg("completion request failed, retrying")

		select {
		case <-ctx.Done():
			return resp, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return resp, lastErr
}
