package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vidbrief/vidbrief-server/internal/logger"
	"github.com/vidbrief/vidbrief-server/internal/model"
)

// errorResponse is the only error shape that leaves the server. Code is
// set for the one case the client must tell apart: an expired access
// token, which should trigger the refresh flow instead of a re-login.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteError maps the error taxonomy to HTTP statuses in one place.
// Credential failures carry no diagnostic detail; infrastructure faults
// are logged server-side and surfaced as a generic failure.
func WriteError(w http.ResponseWriter, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, model.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "email already registered"})
	case errors.Is(err, model.ErrInvalidRefresh):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired refresh token"})
	case errors.Is(err, model.ErrAccessExpired):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "access token expired", Code: "token_expired"})
	case errors.Is(err, model.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
	case errors.Is(err, model.ErrQuotaExceeded):
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "guest limit reached"})
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, model.ErrStoreUnavailable):
		log.Error("store unavailable", "error", err.Error())
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
	default:
		log.Error("internal error", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	writeJSON(w, status, body)
}
