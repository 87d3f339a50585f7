package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Rrens/teetime/internal/api/response"
	"github.com/Rrens/teetime/internal/domain"
)

// TeeTimeService manages tee time slots
type TeeTimeService interface {
	List(ctx context.Context, filter domain.TeeTimeFilter) ([]domain.TeeTime, error)
	BulkCreate(ctx context.Context, req domain.BulkTeeTimeRequest) (int, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

// TeeTimeHandler handles tee time administration endpoints
type TeeTimeHandler struct {
	teeTimes TeeTimeService
}

// NewTeeTimeHandler creates a new tee time handler
func NewTeeTimeHandler(teeTimes TeeTimeService) *TeeTimeHandler {
	return &TeeTimeHandler{teeTimes: teeTimes}
}

// List returns tee times, optionally filtered by course_id and date
func (h *TeeTimeHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.TeeTimeFilter

	if raw := r.URL.Query().Get("course_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.BadRequest(w, "invalid course_id")
			return
		}
		filter.CourseID = id
	}
	filter.Date = r.URL.Query().Get("date")

	teeTimes, err := h.teeTimes.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	response.OK(w, teeTimes)
}

// BulkCreate generates a day of slots for one course
func (h *TeeTimeHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.BulkTeeTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	created, err := h.teeTimes.BulkCreate(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "course not found")
		return
	}

	response.Created(w, map[string]any{
		"created": created,
	})
}

// Delete removes one tee time
func (h *TeeTimeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "teeTimeID")
	if !ok {
		response.BadRequest(w, "invalid tee time ID")
		return
	}

	if err := h.teeTimes.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "tee time not found")
		return
	}
	response.NoContent(w)
}

// DeleteAll removes every tee time
func (h *TeeTimeHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.teeTimes.DeleteAll(r.Context())
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	response.OK(w, map[string]any{
		"deleted": deleted,
	})
}
