package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/bcnelson/netinventory/internal/domain"
	"github.com/bcnelson/netinventory/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// Messages shared with the router's fallback handlers.
const (
	MsgRouteNotFound    = "Route not found"
	MsgMethodNotAllowed = "Method not allowed"
	MsgInvalidRequest   = "Invalid request"
	MsgInternalError    = "Internal server error"
)

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// RespondError writes the uniform {"error": message} body.
func RespondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, &domain.ErrorResponse{Error: message})
}

// handleError converts domain errors to HTTP errors.
func handleError(w http.ResponseWriter, log zerolog.Logger, err error) {
	var notFound *domain.NotFoundError
	var verr *validation.ValidationError

	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, &domain.ErrorResponse{Error: verr.Message, Field: verr.Field})
	case errors.As(err, &notFound):
		RespondError(w, http.StatusNotFound, notFound.Error())
	case errors.Is(err, domain.ErrNotFound):
		RespondError(w, http.StatusNotFound, MsgRouteNotFound)
	case errors.Is(err, domain.ErrInvalidInput):
		RespondError(w, http.StatusBadRequest, MsgInvalidRequest)
	case errors.Is(err, domain.ErrUnauthorized):
		RespondError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		log.Error().Err(err).Msg("request failed")
		RespondError(w, http.StatusInternalServerError, MsgInternalError)
	}
}

// decodeJSON decodes JSON from request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return domain.ErrInvalidInput
	}
	// Only a single JSON value is accepted.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.ErrInvalidInput
	}
	return nil
}

// parseID reads the {id} URL parameter. The router only matches digits, so a
// failure here means the value overflowed int64 and no row can match it.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, domain.ErrNotFound
	}
	return id, nil
}
