package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/perchapp/perch-be/internal/auth"
	"github.com/perchapp/perch-be/internal/services"
)

// InviteHandler handles HTTP requests for invite codes.
type InviteHandler struct {
	service services.InviteServiceProvider
}

// NewInviteHandler creates a new InviteHandler.
func NewInviteHandler(service services.InviteServiceProvider) *InviteHandler {
	return &InviteHandler{service: service}
}

// Create issues a fresh invite code on behalf of the authenticated user.
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())

	invite, err := h.service.CreateInvite(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to create invite")
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"inviteCode": invite.Code,
		"message":    "Invite code created successfully",
	})
}

// List returns the invites the authenticated user has issued.
func (h *InviteHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())

	invites, err := h.service.ListByCreator(claims.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, invites)
}
