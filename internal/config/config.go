// Package config loads service configuration from the environment.
// A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/pricelens/pricelist-extractor/internal/domain"
)

// ExtractMode selects how document content is handed to the model.
type ExtractMode string

const (
	// ModeText extracts plain text from the PDF and sends that.
	ModeText ExtractMode = "text"
	// ModeInline embeds the raw PDF bytes in the model request.
	ModeInline ExtractMode = "inline"
)

// Config holds all configuration for the price list extraction service.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	LLM       LLMConfig
	Render    RenderConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Extract   ExtractConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	RequestTimeout   time.Duration
	GracefulShutdown time.Duration
}

// AuthConfig holds the bearer token secret.
type AuthConfig struct {
	BearerToken string
}

// LLMConfig holds completion API settings.
type LLMConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// RenderConfig holds headless browser settings.
type RenderConfig struct {
	Timeout    time.Duration
	ChromePath string
	NoSandbox  bool
}

// UploadConfig holds upload handling settings.
type UploadConfig struct {
	MaxBytes int64
	TempDir  string
}

// RateLimitConfig holds request rate limit settings.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// ExtractConfig holds pipeline settings.
type ExtractConfig struct {
	Mode ExtractMode
}

// Load reads configuration from the environment, applying defaults for
// everything except the bearer secret and the completion API key.
func Load() (*Config, error) {
	// Ignore error if .env doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:             envInt("PORT", 3000),
			ReadTimeout:      envDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout:     envDuration("WRITE_TIMEOUT", 2*time.Minute),
			IdleTimeout:      envDuration("IDLE_TIMEOUT", time.Minute),
			RequestTimeout:   envDuration("REQUEST_TIMEOUT", 2*time.Minute),
			GracefulShutdown: envDuration("GRACEFUL_SHUTDOWN", 10*time.Second),
		},
		Auth: AuthConfig{
			BearerToken: os.Getenv("BEARER_TOKEN"),
		},
		LLM: LLMConfig{
			APIKey:    os.Getenv("OPENAI_API_KEY"),
			BaseURL:   os.Getenv("OPENAI_BASE_URL"),
			Model:     envString("LLM_MODEL", "gpt-4o-mini"),
			MaxTokens: envInt("LLM_MAX_TOKENS", 4096),
		},
		Render: RenderConfig{
			Timeout:    envDuration("RENDER_TIMEOUT", time.Minute),
			ChromePath: os.Getenv("CHROME_PATH"),
			NoSandbox:  envBool("CHROME_NO_SANDBOX", false),
		},
		Upload: UploadConfig{
			MaxBytes: envInt64("MAX_UPLOAD_BYTES", 50*1024*1024),
			TempDir:  envString("TEMP_DIR", os.TempDir()),
		},
		RateLimit: RateLimitConfig{
			Requests: envInt("RATE_LIMIT_REQUESTS", 100),
			Window:   envDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		},
		Log: LogConfig{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "json"),
		},
		Extract: ExtractConfig{
			Mode: ExtractMode(envString("EXTRACT_MODE", string(ModeText))),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.BearerToken == "" {
		return domain.ConfigError("BEARER_TOKEN not set", nil)
	}
	if c.LLM.APIKey == "" {
		return domain.ConfigError("OPENAI_API_KEY not set", nil)
	}
	if c.Extract.Mode != ModeText && c.Extract.Mode != ModeInline {
		return domain.ConfigError(fmt.Sprintf("EXTRACT_MODE must be %q or %q, got %q", ModeText, ModeInline, c.Extract.Mode), nil)
	}
	if c.Upload.MaxBytes <= 0 {
		return domain.ConfigError("MAX_UPLOAD_BYTES must be positive", nil)
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return domain.ConfigError("rate limit requests and window must be positive", nil)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
