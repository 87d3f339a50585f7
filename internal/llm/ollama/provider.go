package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Rrens/teetime/internal/llm"
)

// Provider implements llm.Provider for Ollama
type Provider struct {
	host         string
	defaultModel string
	client       *http.Client
}

// NewProvider creates a new Ollama provider
func NewProvider(host, defaultModel string) *Provider {
	if defaultModel == "" {
		defaultModel = "llama3"
	}
	return &Provider{
		host:         strings.TrimRight(host, "/"),
		defaultModel: defaultModel,
		client:       &http.Client{Timeout: 300 * time.Second},
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "ollama"
}

// AvailableModels returns list of supported models
func (p *Provider) AvailableModels() []string {
	return []string{
		"llama3",
		"llama3.1",
		"llama3.2",
		"mistral",
		"mixtral",
		"phi3",
		"qwen2",
	}
}

// DefaultModel returns the default model
func (p *Provider) DefaultModel() string {
	return p.defaultModel
}

// IsConfigured checks if provider has valid credentials
func (p *Provider) IsConfigured() bool {
	return p.host != ""
}

// StartConversation opens an empty conversation replayed on every send
func (p *Provider) StartConversation(ctx context.Context) (llm.Conversation, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("ollama provider is not configured (missing host)")
	}
	return llm.NewTranscript(p.complete), nil
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  map[string]any  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

func (p *Provider) complete(ctx context.Context, turns []llm.Turn) (string, error) {
	ollamaReq := ollamaRequest{
		Model:    p.defaultModel,
		Messages: make([]ollamaMessage, 0, len(turns)),
		Stream:   false,
		Options: map[string]any{
			"temperature": llm.Temperature,
			"num_predict": llm.MaxOutputTokens,
		},
	}
	for _, t := range turns {
		ollamaReq.Messages = append(ollamaReq.Messages, ollamaMessage{Role: string(t.Role), Content: t.Text})
	}

	var ollamaResp ollamaResponse
	if err := llm.PostJSON(ctx, p.client, "ollama", p.host+"/api/chat", nil, ollamaReq, &ollamaResp); err != nil {
		return "", err
	}

	return ollamaResp.Message.Content, nil
}
