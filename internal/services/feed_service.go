package services

import (
	"sort"

	"github.com/perchapp/perch-be/internal/models"
	"github.com/perchapp/perch-be/internal/repository"
)

// FeedServiceProvider defines the interface for feed composition.
type FeedServiceProvider interface {
	FeedFor(viewerID string) ([]models.Post, error)
	ExploreAll() ([]models.Post, error)
}

// FeedService composes post timelines for viewers.
type FeedService struct {
	posts repository.PostRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(posts repository.PostRepository) *FeedService {
	return &FeedService{posts: posts}
}

// FeedFor returns the posts authored by the viewer or by anyone the viewer
// follows, newest first. A viewer who follows nobody still sees their own
// posts. Output is deterministic for a fixed store state.
func (s *FeedService) FeedFor(viewerID string) ([]models.Post, error) {
	posts, err := s.posts.ListFeed(viewerID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(posts)
	return posts, nil
}

// ExploreAll returns every post newest first, regardless of the follow
// graph. Used for discovery.
func (s *FeedService) ExploreAll() ([]models.Post, error) {
	posts, err := s.posts.ListAll()
	if err != nil {
		return nil, err
	}
	sortNewestFirst(posts)
	return posts, nil
}

// sortNewestFirst re-sorts by creation time descending. The store already
// returns this order; the stable sort keeps insertion order for equal
// timestamps either way.
func sortNewestFirst(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
