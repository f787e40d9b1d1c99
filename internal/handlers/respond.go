package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"truongphat/internal/models"
	"truongphat/internal/service"
	"truongphat/internal/validation"
)

// APIError is the JSON error envelope returned by every endpoint.
type APIError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, APIError{Message: message})
}

// respondServiceError maps service sentinel errors to HTTP statuses.
// Unrecognized errors are logged and reported as a plain 500 so internals
// never leak to clients.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr validation.ValidationError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, APIError{
			Message: "validation failed",
			Fields:  map[string]string{validationErr.Field: validationErr.Message},
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrStaffNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, service.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, service.ErrAccountDisabled):
		respondError(w, http.StatusForbidden, "account is disabled")
	case errors.Is(err, service.ErrEmailTaken):
		respondError(w, http.StatusConflict, "email already taken")
	case errors.Is(err, service.ErrSlugTaken):
		respondError(w, http.StatusConflict, "slug already taken")
	case errors.Is(err, service.ErrInUse):
		respondError(w, http.StatusConflict, "resource is still referenced")
	case errors.Is(err, service.ErrLastAdmin):
		respondError(w, http.StatusConflict, "cannot remove the last admin account")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func parsePage(r *http.Request) models.Page {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	return models.Page{Number: page, Size: size}.Normalize()
}
