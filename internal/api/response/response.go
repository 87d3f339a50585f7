// Package response writes the JSON envelopes returned by every endpoint.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Response represents a standard API response
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// MessageResponse is the flat shape returned by the chat endpoint
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Int("status", status).Msg("Failed to encode response")
	}
}

func succeeded(status int) bool {
	return status >= 200 && status < 300
}

// JSON wraps data in the success envelope
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, Response{Success: succeeded(status), Data: data})
}

// Error wraps message in the failure envelope
func Error(w http.ResponseWriter, status int, message any) {
	write(w, status, Response{Error: message})
}

// Message sends a {success, message} response
func Message(w http.ResponseWriter, status int, message string) {
	write(w, status, MessageResponse{Success: succeeded(status), Message: message})
}

// NoContent sends a 204 with no body
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func OK(w http.ResponseWriter, data any)      { JSON(w, http.StatusOK, data) }
func Created(w http.ResponseWriter, data any) { JSON(w, http.StatusCreated, data) }

func BadRequest(w http.ResponseWriter, message any)      { Error(w, http.StatusBadRequest, message) }
func Unauthorized(w http.ResponseWriter, message any)    { Error(w, http.StatusUnauthorized, message) }
func Forbidden(w http.ResponseWriter, message any)       { Error(w, http.StatusForbidden, message) }
func NotFound(w http.ResponseWriter, message any)        { Error(w, http.StatusNotFound, message) }
func TooManyRequests(w http.ResponseWriter, message any) { Error(w, http.StatusTooManyRequests, message) }
func InternalError(w http.ResponseWriter, message any)   { Error(w, http.StatusInternalServerError, message) }
