// Package repository defines the storage interfaces the services depend on.
// Each entity type gets its own repository; implementations live in
// subpackages (currently SQLite).
package repository

import (
	"time"

	"github.com/perchapp/perch-be/internal/models"
)

// UserRepository stores user accounts. Lookup methods return (nil, nil)
// when no row matches.
type UserRepository interface {
	Create(user models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsernameOrEmail(username, email string) (*models.User, error)
	UpdateProfile(id string, displayName, bio, avatarURL *string) error
	Search(query string, limit int) ([]models.User, error)
}

// InviteRepository stores one-time invite codes.
type InviteRepository interface {
	Create(invite models.InviteCode) error
	GetByCode(code string) (*models.InviteCode, error)
	MarkUsed(code, userID string, at time.Time) error
	ListByCreator(userID string) ([]models.InviteCode, error)
	Count() (int, error)
}

// PostRepository stores posts and their like sets. List methods return
// posts newest-first with author fields and likes attached.
type PostRepository interface {
	Create(post models.Post) error
	GetByID(id string) (*models.Post, error)
	ListAll() ([]models.Post, error)
	ListByAuthor(authorID string) ([]models.Post, error)
	ListFeed(viewerID string) ([]models.Post, error)
	Delete(id string) error
	CountByAuthor(authorID string) (int, error)
	HasLike(postID, userID string) (bool, error)
	AddLike(postID, userID string) error
	RemoveLike(postID, userID string) error
	Likes(postID string) ([]string, error)
}

// FollowRepository stores directed follow edges.
type FollowRepository interface {
	Exists(followerID, followeeID string) (bool, error)
	Create(followerID, followeeID string, at time.Time) error
	Delete(followerID, followeeID string) error
	Following(userID string) ([]string, error)
	Followers(userID string) ([]string, error)
	CountFollowing(userID string) (int, error)
	CountFollowers(userID string) (int, error)
}
