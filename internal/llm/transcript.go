package llm

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// CompleteFunc performs one stateless round trip over a full transcript.
// The last turn is always the pending user turn.
type CompleteFunc func(ctx context.Context, turns []Turn) (string, error)

// Transcript is a Conversation for providers whose API is stateless.
// It keeps the turns locally and replays them on every send.
type Transcript struct {
	mu       sync.Mutex
	turns    []Turn
	complete CompleteFunc
}

// NewTranscript creates an empty conversation backed by complete
func NewTranscript(complete CompleteFunc) *Transcript {
	return &Transcript{complete: complete}
}

// Send appends text as a user turn and the reply as an assistant turn
func (t *Transcript) Send(ctx context.Context, text string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pending := append(slices.Clone(t.turns), Turn{Role: RoleUser, Text: text})

	reply, err := t.complete(ctx, pending)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", ErrEmptyReply
	}

	t.turns = append(pending, Turn{Role: RoleAssistant, Text: reply})
	return reply, nil
}

// Turns returns a copy of the committed transcript
func (t *Transcript) Turns() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.turns)
}
