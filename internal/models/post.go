package models

import "time"

// MaxPostLength is the character limit for post content, counted after trimming.
const MaxPostLength = 280

// Post represents a short text post. Likes holds the ids of users who
// currently like the post; it is a set, not a counter.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"userId"`
	Content   string    `json:"content"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`

	// Denormalized author fields for rendering, filled on read.
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	AvatarURL   string `json:"avatar,omitempty"`
}
