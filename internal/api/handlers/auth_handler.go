package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/perchapp/perch-be/internal/apperr"
	"github.com/perchapp/perch-be/internal/services"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	InviteCode string `json:"inviteCode"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles invite-gated user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", string(apperr.KindValidation))
		return
	}

	user, token, err := h.service.Register(payload.Username, payload.Email, payload.Password, payload.InviteCode)
	if err != nil {
		if apperr.KindOf(err) == "" {
			log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		}
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"token":   token,
		"user":    user,
	})
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", string(apperr.KindValidation))
		return
	}

	user, token, err := h.service.Login(payload.Email, payload.Password)
	if err != nil {
		if apperr.IsKind(err, apperr.KindAuth) {
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		}
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}
