package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/perchapp/perch-be/internal/apperr"
	"github.com/perchapp/perch-be/internal/auth"
	"github.com/perchapp/perch-be/internal/services"
)

// UserHandler handles HTTP requests for user profiles and the follow graph.
type UserHandler struct {
	users   services.UserServiceProvider
	follows services.FollowServiceProvider
	posts   services.PostServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider, follows services.FollowServiceProvider, posts services.PostServiceProvider) *UserHandler {
	return &UserHandler{users: users, follows: follows, posts: posts}
}

// GetMe retrieves the currently authenticated user from the token.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())

	user, err := h.users.GetUserByID(claims.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateMe handles partial updates to the authenticated user's profile.
// Absent fields stay untouched.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())

	var payload struct {
		DisplayName *string `json:"displayName"`
		Bio         *string `json:"bio"`
		Avatar      *string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", string(apperr.KindValidation))
		return
	}

	user, err := h.users.UpdateProfile(claims.UserID, payload.DisplayName, payload.Bio, payload.Avatar)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Get handles retrieving a user's public profile with social counters.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())
	userID := chi.URLParam(r, "userID")

	profile, err := h.users.GetProfile(claims.UserID, userID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// GetPosts handles retrieving a user's posts, newest first.
func (h *UserHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	posts, err := h.posts.ListByAuthor(userID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

// Search handles user search by username or display name.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.Search(r.URL.Query().Get("q"))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// ToggleFollow follows the target user, or unfollows if already following.
func (h *UserHandler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())
	targetID := chi.URLParam(r, "userID")

	state, err := h.follows.ToggleFollow(claims.UserID, targetID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// GetFollowers handles listing the ids of a user's followers.
func (h *UserHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	followers, err := h.follows.Followers(chi.URLParam(r, "userID"))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, followers)
}

// GetFollowing handles listing the ids a user follows.
func (h *UserHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	following, err := h.follows.Following(chi.URLParam(r, "userID"))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, following)
}
