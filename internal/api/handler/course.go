package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Rrens/teetime/internal/api/response"
	"github.com/Rrens/teetime/internal/domain"
)

// CourseService manages golf courses
type CourseService interface {
	List(ctx context.Context) ([]domain.Course, error)
	Get(ctx context.Context, id int64) (*domain.Course, error)
	Create(ctx context.Context, input domain.CourseInput) (*domain.Course, error)
	Update(ctx context.Context, id int64, input domain.CourseInput) (*domain.Course, error)
	Delete(ctx context.Context, id int64) error
}

// CourseHandler handles course endpoints
type CourseHandler struct {
	courses CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courses CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List returns all courses
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.List(r.Context())
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	response.OK(w, courses)
}

// Get returns one course
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "courseID")
	if !ok {
		response.BadRequest(w, "invalid course ID")
		return
	}

	course, err := h.courses.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "course not found")
		return
	}
	response.OK(w, course)
}

// Create adds a course
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CourseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	course, err := h.courses.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	response.Created(w, course)
}

// Update replaces a course
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "courseID")
	if !ok {
		response.BadRequest(w, "invalid course ID")
		return
	}

	var input domain.CourseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	course, err := h.courses.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err, "course not found")
		return
	}
	response.OK(w, course)
}

// Delete removes a course
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "courseID")
	if !ok {
		response.BadRequest(w, "invalid course ID")
		return
	}

	if err := h.courses.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "course not found")
		return
	}
	response.NoContent(w)
}
