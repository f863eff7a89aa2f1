// Package llm calls an OpenAI-compatible completion API to turn
// document content into a Markdown price list.
package llm

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/pricelens/pricelist-extractor/internal/domain"
)

const defaultModel = "gpt-4o-mini"

// systemPrompt is the fixed task instruction. The extraction strategy
// lives entirely on the model side.
const systemPrompt = `You are a pricing data extraction assistant. Extract every product or service price present in the supplied document and return a price list formatted as a Markdown table with the columns Item, Description, and Price. Preserve currencies and units exactly as written. Output only Markdown with no commentary. If the document contains no prices, return exactly: No prices found.`

// Completer is the minimal surface of the go-openai client used here,
// so tests can substitute a stub backend.
type Completer interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config holds completion client settings.
type Config struct {
	APIKey    string
	BaseURL   string // optional OpenAI-compatible endpoint
	Model     string
	MaxTokens int
}

// Client extracts price lists through a chat completion API.
type Client struct {
	api       Completer
	model     string
	maxTokens int
	retry     retryConfig
	logger    zerolog.Logger
}

// NewClient creates a new completion client.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.ConfigError("API key is required", nil)
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	return &Client{
		api:       openai.NewClientWithConfig(apiCfg),
		model:     model,
		maxTokens: maxTokens,
		retry:     defaultRetryConfig(),
		logger:    logger.With().Str("component", "llm").Logger(),
	}, nil
}

// ExtractPriceList sends the document with the fixed instruction and
// returns the text of the first response choice.
func (c *Client) ExtractPriceList(ctx context.Context, doc domain.Document) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  buildMessages(doc),
	}

	resp, err := c.completeWithRetry(ctx, req)
	if err != nil {
		return "", domain.APIError("completion request failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.APIError("completion returned no choices", nil)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildMessages assembles the chat payload. Text documents go as plain
// user content; inline documents embed the PDF bytes as a data URL,
// the way multimodal OpenAI-compatible endpoints accept attachments.
func buildMessages(doc domain.Document) []openai.ChatCompletionMessage {
	if doc.Inline() {
		dataURL := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(doc.Raw)
		return []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: systemPrompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
				},
			},
		}
	}

	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: doc.Text},
	}
}
