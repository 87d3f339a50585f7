package llm

import (
	"context"
	"errors"
)

// Generation settings shared by every provider
const (
	MaxOutputTokens = 500
	Temperature     = 0.7
)

// ErrEmptyReply is returned when a provider answers with no text
var ErrEmptyReply = errors.New("empty reply from provider")

// Role identifies the author of a transcript turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of a conversation transcript
type Turn struct {
	Role Role
	Text string
}

// Conversation is a stateful chat handle on a remote provider.
// Sends on one conversation are serialized and a failed send leaves the
// transcript as it was before the call.
type Conversation interface {
	Send(ctx context.Context, text string) (string, error)
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// StartConversation opens an empty conversation on the default model
	StartConversation(ctx context.Context) (Conversation, error)
}
