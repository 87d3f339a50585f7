// Package chat implements the conversational booking assistant: a per-user
// table of provider conversations kept fresh with live availability.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/teetime/internal/llm"
)

// MessageRequired is returned for blank messages
const MessageRequired = "Message is required"

// ContextSource renders the current database context for the assistant
type ContextSource interface {
	Context(ctx context.Context) (string, error)
}

// ManagerConfig tunes dispatch behavior
type ManagerConfig struct {
	Retry RetryPolicy
	// RequestTimeout bounds one Handle call end to end; zero disables it
	RequestTimeout time.Duration
}

// Manager routes user messages to their conversation
type Manager struct {
	store    Store
	provider llm.Provider
	contexts ContextSource
	cfg      ManagerConfig
}

// NewManager creates a new session manager
func NewManager(store Store, provider llm.Provider, contexts ContextSource, cfg ManagerConfig) *Manager {
	if cfg.Retry.Attempts == 0 {
		cfg.Retry = DefaultRetryPolicy()
	}
	return &Manager{
		store:    store,
		provider: provider,
		contexts: contexts,
		cfg:      cfg,
	}
}

// Handle answers one message for userID. A new conversation is opened when the
// user has none or it went idle; a live one gets a context refresh first.
func (m *Manager) Handle(ctx context.Context, userID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", &ValidationError{Message: MessageRequired}
	}

	if m.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.RequestTimeout)
		defer cancel()
	}

	logger := log.With().Str("user_id", userID).Str("provider", m.provider.Name()).Logger()

	conv, err := m.resolve(ctx, userID)
	if err != nil {
		m.store.Delete(userID)
		logger.Error().Err(err).Msg("Chat initialization failed")
		return "", &InitializationError{Err: err}
	}

	// the sweeper may have taken the entry while the refresh was in flight
	if !m.store.Touch(userID) {
		m.store.Put(userID, conv)
	}

	turn := llm.BuildUserTurn(message)
	reply, attempts, err := Retry(ctx, m.cfg.Retry, func() (string, error) {
		return conv.Send(ctx, turn)
	})
	if err != nil {
		m.store.Delete(userID)
		logger.Error().Err(err).Uint("attempts", attempts).Msg("Chat dispatch failed, conversation evicted")
		return "", &ProviderError{Attempts: attempts, Err: err}
	}

	logger.Debug().Uint("attempts", attempts).Int("reply_len", len(reply)).Msg("Chat reply sent")
	return reply, nil
}

// ActiveSessions returns the number of stored conversations
func (m *Manager) ActiveSessions() int {
	return m.store.Len()
}

// Store exposes the underlying session store
func (m *Manager) Store() Store {
	return m.store
}

func (m *Manager) resolve(ctx context.Context, userID string) (llm.Conversation, error) {
	if entry, ok := m.store.Get(userID); ok {
		m.store.Touch(userID)
		if err := m.refresh(ctx, entry.Conversation); err != nil {
			return nil, err
		}
		return entry.Conversation, nil
	}

	return m.open(ctx, userID)
}

func (m *Manager) open(ctx context.Context, userID string) (llm.Conversation, error) {
	dbContext, err := m.contexts.Context(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load database context: %w", err)
	}

	conv, err := m.provider.StartConversation(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start conversation: %w", err)
	}

	if _, err := conv.Send(ctx, llm.BuildPreamble(dbContext)); err != nil {
		return nil, fmt.Errorf("failed to send preamble: %w", err)
	}

	m.store.Put(userID, conv)
	log.Info().Str("user_id", userID).Msg("Conversation started")
	return conv, nil
}

func (m *Manager) refresh(ctx context.Context, conv llm.Conversation) error {
	dbContext, err := m.contexts.Context(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh database context: %w", err)
	}

	if _, err := conv.Send(ctx, llm.BuildContextRefresh(dbContext)); err != nil {
		return fmt.Errorf("failed to send context refresh: %w", err)
	}
	return nil
}
