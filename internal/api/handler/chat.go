package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/teetime/internal/api/middleware"
	"github.com/Rrens/teetime/internal/api/response"
	"github.com/Rrens/teetime/internal/chat"
)

// User-facing chat failure messages; causes are only logged
const (
	ChatUnavailable            = "Chat service is currently unavailable. Please try again later."
	ChatTemporarilyUnavailable = "Chat service temporarily unavailable. Please try again."
)

// ChatService answers a user's message
type ChatService interface {
	Handle(ctx context.Context, userID, message string) (string, error)
}

// ChatHandler handles the booking assistant endpoint
type ChatHandler struct {
	chat ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Send forwards one message to the user's conversation
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Message(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, chat.MessageRequired)
		return
	}

	reply, err := h.chat.Handle(r.Context(), userID.String(), req.Message)
	if err != nil {
		var validationErr *chat.ValidationError
		var initErr *chat.InitializationError
		var providerErr *chat.ProviderError

		// the chat manager already logged initialization and provider failures
		switch {
		case errors.As(err, &validationErr):
			response.Message(w, http.StatusBadRequest, validationErr.Message)
		case errors.As(err, &initErr):
			response.Message(w, http.StatusServiceUnavailable, ChatUnavailable)
		case errors.As(err, &providerErr):
			response.Message(w, http.StatusInternalServerError, ChatTemporarilyUnavailable)
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("Chat request failed")
			response.Message(w, http.StatusInternalServerError, ChatTemporarilyUnavailable)
		}
		return
	}

	response.Message(w, http.StatusOK, reply)
}
