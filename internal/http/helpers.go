package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
	"github.com/obrienteixeira/tokyo-manicure/internal/log"
	"github.com/obrienteixeira/tokyo-manicure/internal/records"
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
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondStoreError maps store errors onto HTTP statuses. Validation
// failures are the caller's fault, missing records are 404, everything
// else is a 500.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, records.ErrNotFound):
		respondError(w, http.StatusNotFound, "record not found")
	case isValidationError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Store operation failed", log.FieldError, err.Error(), log.FieldPath, r.URL.Path)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, v := range []error{
		core.ErrInvalidAmount,
		core.ErrEmptyName,
		core.ErrEmptyPhone,
		core.ErrInvalidKind,
		core.ErrInvalidPaymentMethod,
		core.ErrInvalidStatus,
		core.ErrInvalidRole,
		core.ErrMissingClient,
		core.ErrMissingEmployee,
		core.ErrMissingService,
		core.ErrMissingInstant,
		core.ErrInvalidCommission,
		core.ErrNegativeCommission,
		core.ErrInvalidDuration,
		core.ErrInvalidStock,
		core.ErrInvalidValidity,
		core.ErrEmptyEmail,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
