package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/teetime/internal/api/handler"
	"github.com/Rrens/teetime/internal/api/middleware"
	"github.com/Rrens/teetime/internal/chat"
)

type chatFunc func(ctx context.Context, userID, message string) (string, error)

func (f chatFunc) Handle(ctx context.Context, userID, message string) (string, error) {
	return f(ctx, userID, message)
}

func postChat(t *testing.T, svc handler.ChatService, userID uuid.UUID, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
	rec := httptest.NewRecorder()

	handler.NewChatHandler(svc).Send(rec, req)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestChatHandler_Send(t *testing.T) {
	userID := uuid.New()

	var gotUser, gotMessage string
	svc := chatFunc(func(ctx context.Context, u, m string) (string, error) {
		gotUser, gotMessage = u, m
		return "Royal Links has 07:30 AM open tomorrow. Shall I hold it?", nil
	})

	status, resp := postChat(t, svc, userID, `{"message":"book me a tee time tomorrow morning"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Royal Links has 07:30 AM open tomorrow. Shall I hold it?", resp["message"])
	assert.Equal(t, userID.String(), gotUser)
	assert.Equal(t, "book me a tee time tomorrow morning", gotMessage)
}

func TestChatHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
		logged  bool
	}{
		{"blank message", &chat.ValidationError{Message: chat.MessageRequired}, http.StatusBadRequest, chat.MessageRequired, false},
		{"initialization", &chat.InitializationError{Err: errors.New("context query failed")}, http.StatusServiceUnavailable, handler.ChatUnavailable, false},
		{"provider", &chat.ProviderError{Attempts: 3, Err: errors.New("quota")}, http.StatusInternalServerError, handler.ChatTemporarilyUnavailable, false},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, handler.ChatTemporarilyUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			prev := log.Logger
			log.Logger = zerolog.New(&logs)
			t.Cleanup(func() { log.Logger = prev })

			svc := chatFunc(func(context.Context, string, string) (string, error) { return "", tt.err })

			status, resp := postChat(t, svc, uuid.New(), `{"message":"hi"}`)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, tt.message, resp["message"])
			assert.Equal(t, tt.logged, logs.Len() > 0, logs.String())
		})
	}
}

func TestChatHandler_MalformedBody(t *testing.T) {
	called := false
	svc := chatFunc(func(context.Context, string, string) (string, error) {
		called = true
		return "", nil
	})

	status, resp := postChat(t, svc, uuid.New(), `not json`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, chat.MessageRequired, resp["message"])
	assert.False(t, called)
}
