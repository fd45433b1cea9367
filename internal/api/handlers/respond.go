package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/perchapp/perch-be/internal/apperr"
)

// ErrorResponse is the JSON body of every error response. Kind is the
// machine-readable classification, Error the human-readable message.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

var kindStatus = map[apperr.Kind]int{
	apperr.KindValidation:    http.StatusBadRequest,
	apperr.KindInviteInvalid: http.StatusBadRequest,
	apperr.KindAuth:          http.StatusUnauthorized,
	apperr.KindForbidden:     http.StatusForbidden,
	apperr.KindNotFound:      http.StatusNotFound,
	apperr.KindConflict:      http.StatusConflict,
}

// respondJSON writes data as a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response with an explicit kind.
func respondError(w http.ResponseWriter, status int, message, kind string) {
	respondJSON(w, status, ErrorResponse{Error: message, Kind: kind})
}

// respondAppError maps a classified error to its HTTP status. Anything
// unclassified is an internal failure: it is logged and hidden from the
// client.
func respondAppError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status, ok := kindStatus[appErr.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		respondError(w, status, appErr.Message, string(appErr.Kind))
		return
	}

	log.Error().Err(err).Msg("Internal error")
	respondError(w, http.StatusInternalServerError, "Internal server error", "internal")
}
