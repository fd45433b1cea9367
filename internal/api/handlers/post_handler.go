package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/perchapp/perch-be/internal/apperr"
	"github.com/perchapp/perch-be/internal/auth"
	"github.com/perchapp/perch-be/internal/services"
)

// PostHandler handles HTTP requests for posts, likes and feeds.
type PostHandler struct {
	posts services.PostServiceProvider
	feed  services.FeedServiceProvider
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts services.PostServiceProvider, feed services.FeedServiceProvider) *PostHandler {
	return &PostHandler{posts: posts, feed: feed}
}

// Create handles posting a new message.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", string(apperr.KindValidation))
		return
	}

	post, err := h.posts.CreatePost(claims.UserID, payload.Content)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// Feed returns the authenticated user's personalized timeline: their own
// posts plus posts from everyone they follow.
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())

	posts, err := h.feed.FeedFor(claims.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

// Explore returns every post for discovery, no personalization.
func (h *PostHandler) Explore(w http.ResponseWriter, r *http.Request) {
	posts, err := h.feed.ExploreAll()
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

// ToggleLike likes the post, or unlikes it if already liked.
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())
	postID := chi.URLParam(r, "postID")

	likes, liked, err := h.posts.ToggleLike(postID, claims.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"likes": likes,
		"liked": liked,
	})
}

// Delete removes a post. Only the author may delete their own posts.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())
	postID := chi.URLParam(r, "postID")

	if err := h.posts.DeletePost(postID, claims.UserID); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}
