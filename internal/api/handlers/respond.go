package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/avezina/todostack/internal/services"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeMessage sends a `{message}` body, the error shape shared by both
// services.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// respondServiceError maps service sentinel errors to HTTP statuses in one
// place. Unrecognized errors are logged and become a generic 500 so no
// internal detail leaks to the client.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		writeMessage(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrTodoNotFound):
		writeMessage(w, http.StatusNotFound, "Todo not found")
	case errors.Is(err, services.ErrNotOwner):
		writeMessage(w, http.StatusForbidden, "Forbidden: You do not have access to this todo")
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
