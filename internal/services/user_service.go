package services

import (
	"strings"

	"github.com/perchapp/perch-be/internal/apperr"
	"github.com/perchapp/perch-be/internal/models"
	"github.com/perchapp/perch-be/internal/repository"
)

const searchResultLimit = 10

// UserServiceProvider defines the interface for user profile operations.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	UpdateProfile(id string, displayName, bio, avatarURL *string) (models.User, error)
	GetProfile(viewerID, userID string) (models.Profile, error)
	Search(query string) ([]models.User, error)
}

// UserService provides business logic for user profiles.
type UserService struct {
	users   repository.UserRepository
	posts   repository.PostRepository
	follows repository.FollowRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, posts repository.PostRepository, follows repository.FollowRepository) *UserService {
	return &UserService{users: users, posts: posts, follows: follows}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, apperr.NotFound("User not found")
	}
	user.PasswordHash = ""
	return *user, nil
}

// UpdateProfile changes only the profile fields that were provided.
func (s *UserService) UpdateProfile(id string, displayName, bio, avatarURL *string) (models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, apperr.NotFound("User not found")
	}

	if err := s.users.UpdateProfile(id, displayName, bio, avatarURL); err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(id)
}

// GetProfile assembles the public view of a user as seen by the viewer,
// including post and follow counters.
func (s *UserService) GetProfile(viewerID, userID string) (models.Profile, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return models.Profile{}, err
	}
	if user == nil {
		return models.Profile{}, apperr.NotFound("User not found")
	}

	postsCount, err := s.posts.CountByAuthor(userID)
	if err != nil {
		return models.Profile{}, err
	}
	followersCount, err := s.follows.CountFollowers(userID)
	if err != nil {
		return models.Profile{}, err
	}
	followingCount, err := s.follows.CountFollowing(userID)
	if err != nil {
		return models.Profile{}, err
	}
	isFollowing, err := s.follows.Exists(viewerID, userID)
	if err != nil {
		return models.Profile{}, err
	}

	return models.Profile{
		ID:             user.ID,
		Username:       user.Username,
		DisplayName:    user.DisplayName,
		Bio:            user.Bio,
		AvatarURL:      user.AvatarURL,
		CreatedAt:      user.CreatedAt,
		PostsCount:     postsCount,
		FollowersCount: followersCount,
		FollowingCount: followingCount,
		IsFollowing:    isFollowing,
	}, nil
}

// Search finds up to ten users matching the query by username or display
// name. An empty query matches nobody.
func (s *UserService) Search(query string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.User{}, nil
	}

	users, err := s.users.Search(query, searchResultLimit)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}
