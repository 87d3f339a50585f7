package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Rrens/teetime/internal/config"
	"github.com/Rrens/teetime/internal/llm"
)

const defaultModel = "gemini-1.5-flash"

// Provider implements llm.Provider on top of Gemini chat sessions
type Provider struct {
	apiKey string
	model  string
	opts   []option.ClientOption

	mu     sync.Mutex
	client *genai.Client
}

// NewProvider creates a Gemini provider. The API client is dialed lazily
// on the first conversation and shared afterwards.
func NewProvider(cfg config.GeminiConfig, opts ...option.ClientOption) *Provider {
	return &Provider{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		opts:   opts,
	}
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) AvailableModels() []string {
	return []string{
		"gemini-1.5-flash",
		"gemini-1.5-pro",
		"gemini-2.0-flash",
		"gemini-2.5-flash",
	}
}

func (p *Provider) DefaultModel() string {
	if p.model != "" {
		return p.model
	}
	return defaultModel
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

// StartConversation opens a new chat session on the default model
func (p *Provider) StartConversation(ctx context.Context) (llm.Conversation, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(p.DefaultModel())
	model.SetMaxOutputTokens(llm.MaxOutputTokens)
	model.SetTemperature(llm.Temperature)

	return &conversation{session: model.StartChat()}, nil
}

// Close releases the shared API client
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}

func (p *Provider) getClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	opts := append([]option.ClientOption{option.WithAPIKey(p.apiKey)}, p.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	p.client = client
	return client, nil
}

type conversation struct {
	mu      sync.Mutex
	session *genai.ChatSession
}

// Send forwards one turn. The chat session appends the user turn before the
// call, so the history is truncated back on any failure.
func (c *conversation) Send(ctx context.Context, text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mark := len(c.session.History)

	resp, err := c.session.SendMessage(ctx, genai.Text(text))
	if err != nil {
		c.session.History = c.session.History[:mark]
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	reply, err := replyText(resp)
	if err != nil {
		c.session.History = c.session.History[:mark]
		return "", err
	}
	return reply, nil
}

func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", llm.ErrEmptyReply
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", llm.ErrEmptyReply
	}
	return reply, nil
}
