package services

import (
	"time"

	"github.com/perchapp/perch-be/internal/apperr"
	"github.com/perchapp/perch-be/internal/models"
	"github.com/perchapp/perch-be/internal/repository"
)

// FollowServiceProvider defines the interface for the social graph.
type FollowServiceProvider interface {
	ToggleFollow(followerID, targetID string) (models.FollowState, error)
	IsFollowing(followerID, targetID string) (bool, error)
	Followers(userID string) ([]string, error)
	Following(userID string) ([]string, error)
}

// FollowService provides business logic for directed follow relationships.
type FollowService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
}

// NewFollowService creates a new FollowService.
func NewFollowService(follows repository.FollowRepository, users repository.UserRepository) *FollowService {
	return &FollowService{follows: follows, users: users}
}

// ToggleFollow follows the target if not currently followed, else
// unfollows. It returns the resulting edge state and follow count.
func (s *FollowService) ToggleFollow(followerID, targetID string) (models.FollowState, error) {
	if followerID == targetID {
		return models.FollowState{}, apperr.Validation("You cannot follow yourself")
	}

	target, err := s.users.GetByID(targetID)
	if err != nil {
		return models.FollowState{}, err
	}
	if target == nil {
		return models.FollowState{}, apperr.NotFound("User not found")
	}

	following, err := s.follows.Exists(followerID, targetID)
	if err != nil {
		return models.FollowState{}, err
	}
	if following {
		err = s.follows.Delete(followerID, targetID)
	} else {
		err = s.follows.Create(followerID, targetID, time.Now().UTC())
	}
	if err != nil {
		return models.FollowState{}, err
	}

	count, err := s.follows.CountFollowing(followerID)
	if err != nil {
		return models.FollowState{}, err
	}
	return models.FollowState{Following: !following, FollowingCount: count}, nil
}

// IsFollowing reports whether followerID currently follows targetID.
func (s *FollowService) IsFollowing(followerID, targetID string) (bool, error) {
	return s.follows.Exists(followerID, targetID)
}

// Followers returns the ids of users following the given user.
func (s *FollowService) Followers(userID string) ([]string, error) {
	return s.follows.Followers(userID)
}

// Following returns the ids the given user follows.
func (s *FollowService) Following(userID string) ([]string, error) {
	return s.follows.Following(userID)
}
