package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Rrens/teetime/internal/llm"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Provider implements llm.Provider for OpenAI-compatible chat completion APIs
type Provider struct {
	name         string
	apiKey       string
	defaultModel string
	models       []string
	client       *http.Client
	baseURL      string
}

// Option customizes a Provider
type Option func(*Provider)

// WithBaseURL points the provider at another OpenAI-compatible endpoint
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) { p.baseURL = baseURL }
}

// WithName overrides the provider identifier
func WithName(name string) Option {
	return func(p *Provider) { p.name = name }
}

// WithModels overrides the advertised model list
func WithModels(models ...string) Option {
	return func(p *Provider) { p.models = models }
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) { p.client = client }
}

// NewProvider creates a new OpenAI provider
func NewProvider(apiKey, defaultModel string, opts ...Option) *Provider {
	if defaultModel == "" {
		defaultModel = "gpt-4o-mini"
	}
	p := &Provider{
		name:         "openai",
		apiKey:       apiKey,
		defaultModel: defaultModel,
		models:       []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo", "gpt-3.5-turbo"},
		client:       &http.Client{Timeout: 120 * time.Second},
		baseURL:      defaultBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return p.name
}

// AvailableModels returns list of supported models
func (p *Provider) AvailableModels() []string {
	return p.models
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
		return nil, fmt.Errorf("%s provider is not configured (missing API key)", p.name)
	}
	return llm.NewTranscript(p.complete), nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *Provider) complete(ctx context.Context, turns []llm.Turn) (string, error) {
	chatReq := chatRequest{
		Model:       p.defaultModel,
		Messages:    make([]chatMessage, 0, len(turns)),
		Temperature: llm.Temperature,
		MaxTokens:   llm.MaxOutputTokens,
	}
	for _, t := range turns {
		chatReq.Messages = append(chatReq.Messages, chatMessage{Role: string(t.Role), Content: t.Text})
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+p.apiKey)

	var chatResp chatResponse
	if err := llm.PostJSON(ctx, p.client, p.name, p.baseURL+"/chat/completions", header, chatReq, &chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 {
		return "", llm.ErrEmptyReply
	}

	return chatResp.Choices[0].Message.Content, nil
}
