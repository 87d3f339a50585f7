package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/teetime/internal/llm"
)

func TestConversation_ReplaysTranscript(t *testing.T) {
	var requests []chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Tomorrow at 7:30 AM is open."}}]}`))
	}))
	defer srv.Close()

	p := NewProvider("sk-test", "gpt-4o-mini", WithBaseURL(srv.URL))
	conv, err := p.StartConversation(context.Background())
	require.NoError(t, err)

	_, err = conv.Send(context.Background(), "preamble")
	require.NoError(t, err)
	reply, err := conv.Send(context.Background(), "book me")
	require.NoError(t, err)

	assert.Equal(t, "Tomorrow at 7:30 AM is open.", reply)
	require.Len(t, requests, 2)
	assert.Len(t, requests[1].Messages, 3)
	assert.Equal(t, "assistant", requests[1].Messages[1].Role)
	assert.Equal(t, llm.MaxOutputTokens, requests[1].MaxTokens)
	assert.InDelta(t, llm.Temperature, requests[1].Temperature, 0.0001)
}

func TestConversation_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewProvider("sk-test", "", WithBaseURL(srv.URL), WithName("deepseek"))
	conv, err := p.StartConversation(context.Background())
	require.NoError(t, err)

	_, err = conv.Send(context.Background(), "hello")
	assert.ErrorContains(t, err, "deepseek returned status 429")
}

func TestProvider_NotConfigured(t *testing.T) {
	p := NewProvider("", "")
	assert.False(t, p.IsConfigured())
	assert.Equal(t, "gpt-4o-mini", p.DefaultModel())

	_, err := p.StartConversation(context.Background())
	assert.Error(t, err)
}
