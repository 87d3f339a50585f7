package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Rrens/teetime/internal/llm"
)

// Provider implements llm.Provider for Anthropic
type Provider struct {
	apiKey       string
	defaultModel string
	client       *http.Client
	baseURL      string
}

// NewProvider creates a new Anthropic provider
func NewProvider(apiKey, defaultModel string) *Provider {
	if defaultModel == "" {
		defaultModel = "claude-3-5-haiku-20241022"
	}
	return &Provider{
		apiKey:       apiKey,
		defaultModel: defaultModel,
		client:       &http.Client{Timeout: 120 * time.Second},
		baseURL:      "https://api.anthropic.com/v1",
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "anthropic"
}

// AvailableModels returns list of supported models
func (p *Provider) AvailableModels() []string {
	return []string{
		"claude-3-5-haiku-20241022",
		"claude-3-5-sonnet-20241022",
		"claude-3-opus-20240229",
	}
}

// DefaultModel returns the default model
func (p *Provider) DefaultModel() string {
	return p.defaultModel
}

// IsConfigured checks if provider has valid credentials
func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

// StartConversation opens an empty conversation replayed on every send
func (p *Provider) StartConversation(ctx context.Context) (llm.Conversation, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("anthropic provider is not configured (missing API key)")
	}
	return llm.NewTranscript(p.complete), nil
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (p *Provider) complete(ctx context.Context, turns []llm.Turn) (string, error) {
	anthropicReq := anthropicRequest{
		Model:       p.defaultModel,
		MaxTokens:   llm.MaxOutputTokens,
		Temperature: llm.Temperature,
		Messages:    make([]anthropicMessage, 0, len(turns)),
	}
	for _, t := range turns {
		anthropicReq.Messages = append(anthropicReq.Messages, anthropicMessage{Role: string(t.Role), Content: t.Text})
	}

	header := http.Header{}
	header.Set("x-api-key", p.apiKey)
	header.Set("anthropic-version", "2023-06-01")

	var anthropicResp anthropicResponse
	if err := llm.PostJSON(ctx, p.client, "anthropic", p.baseURL+"/messages", header, anthropicReq, &anthropicResp); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range anthropicResp.Content {
		if block.Type == "" || block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
