package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/teetime/internal/api/response"
	"github.com/Rrens/teetime/internal/domain"
	"github.com/Rrens/teetime/internal/service"
)

// writeError maps service errors onto the response envelope
func writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(w, validationErr.Fields)
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, notFound)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		response.InternalError(w, "internal server error")
	}
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
