package models

import "time"

// User represents a registered account in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	DisplayName  string    `json:"displayName"`
	Bio          string    `json:"bio"`
	AvatarURL    string    `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the public view of a user, enriched with social counters.
type Profile struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"displayName"`
	Bio            string    `json:"bio"`
	AvatarURL      string    `json:"avatar"`
	CreatedAt      time.Time `json:"createdAt"`
	PostsCount     int       `json:"postsCount"`
	FollowersCount int       `json:"followersCount"`
	FollowingCount int       `json:"followingCount"`
	IsFollowing    bool      `json:"isFollowing"`
}
