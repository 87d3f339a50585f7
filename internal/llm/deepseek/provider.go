package deepseek

import (
	"github.com/Rrens/teetime/internal/llm/openai"
)

const baseURL = "https://api.deepseek.com/v1"

// NewProvider creates a DeepSeek provider on its OpenAI-compatible endpoint
func NewProvider(apiKey, defaultModel string) *openai.Provider {
	if defaultModel == "" {
		defaultModel = "deepseek-chat"
	}
	return openai.NewProvider(apiKey, defaultModel,
		openai.WithName("deepseek"),
		openai.WithBaseURL(baseURL),
		openai.WithModels("deepseek-chat", "deepseek-reasoner"),
	)
}
