package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/teetime/internal/llm"
)

func TestTranscript_AppendsTurns(t *testing.T) {
	var seen [][]llm.Turn
	tr := llm.NewTranscript(func(ctx context.Context, turns []llm.Turn) (string, error) {
		seen = append(seen, turns)
		return "reply " + turns[len(turns)-1].Text, nil
	})

	reply, err := tr.Send(context.Background(), "one")
	require.NoError(t, err)
	assert.Equal(t, "reply one", reply)

	_, err = tr.Send(context.Background(), "two")
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Len(t, seen[1], 3)
	assert.Equal(t, []llm.Turn{
		{Role: llm.RoleUser, Text: "one"},
		{Role: llm.RoleAssistant, Text: "reply one"},
		{Role: llm.RoleUser, Text: "two"},
		{Role: llm.RoleAssistant, Text: "reply two"},
	}, tr.Turns())
}

func TestTranscript_FailedSendLeavesTranscript(t *testing.T) {
	fail := true
	tr := llm.NewTranscript(func(ctx context.Context, turns []llm.Turn) (string, error) {
		if fail {
			return "", errors.New("upstream 503")
		}
		return "ok", nil
	})

	_, err := tr.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Empty(t, tr.Turns())

	fail = false
	_, err = tr.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, tr.Turns(), 2)
}

func TestTranscript_EmptyReply(t *testing.T) {
	tr := llm.NewTranscript(func(ctx context.Context, turns []llm.Turn) (string, error) {
		return "  ", nil
	})

	_, err := tr.Send(context.Background(), "hello")
	assert.ErrorIs(t, err, llm.ErrEmptyReply)
	assert.Empty(t, tr.Turns())
}
