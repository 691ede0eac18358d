package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses. Storage
// failures are logged with full context and surfaced as an opaque 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsValidation(err),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrContractClosed),
		errors.Is(err, domain.ErrNothingToReturn),
		errors.Is(err, domain.ErrReleaseExceedsTotal):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEquipmentNotFound),
		errors.Is(err, domain.ErrContractNotFound),
		errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrNotificationNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		logger.Error("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestIDFrom(r.Context()),
			"error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("body", "malformed JSON")
	}
	return nil
}
