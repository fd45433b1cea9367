package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/perchapp/perch-be/internal/apperr"
	"github.com/perchapp/perch-be/internal/models"
	"github.com/perchapp/perch-be/internal/repository"
)

// PostServiceProvider defines the interface for post management.
type PostServiceProvider interface {
	CreatePost(authorID, content string) (models.Post, error)
	ListAll() ([]models.Post, error)
	ListByAuthor(authorID string) ([]models.Post, error)
	ToggleLike(postID, userID string) ([]string, bool, error)
	DeletePost(postID, requesterID string) error
}

// PostService provides business logic for posts and likes.
type PostService struct {
	posts repository.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// CreatePost stores a new post after validating its content. Content is
// trimmed first; the length limit applies to the trimmed text.
func (s *PostService) CreatePost(authorID, content string) (models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Post{}, apperr.Validation("Post content is required")
	}
	if utf8.RuneCountInString(content) > models.MaxPostLength {
		return models.Post{}, apperr.Validation("Post content cannot exceed %d characters", models.MaxPostLength)
	}

	post := models.Post{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.Create(post); err != nil {
		return models.Post{}, err
	}

	created, err := s.posts.GetByID(post.ID)
	if err != nil {
		return models.Post{}, err
	}
	return *created, nil
}

// ListAll returns every post, newest first.
func (s *PostService) ListAll() ([]models.Post, error) {
	return s.posts.ListAll()
}

// ListByAuthor returns a user's posts, newest first.
func (s *PostService) ListByAuthor(authorID string) ([]models.Post, error) {
	return s.posts.ListByAuthor(authorID)
}

// ToggleLike adds the user to the post's like set if absent, removes them
// if present. It returns the resulting like set and whether the post is
// liked after the call.
func (s *PostService) ToggleLike(postID, userID string) ([]string, bool, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, false, err
	}
	if post == nil {
		return nil, false, apperr.NotFound("Post not found")
	}

	liked, err := s.posts.HasLike(postID, userID)
	if err != nil {
		return nil, false, err
	}
	if liked {
		err = s.posts.RemoveLike(postID, userID)
	} else {
		err = s.posts.AddLike(postID, userID)
	}
	if err != nil {
		return nil, false, err
	}

	likes, err := s.posts.Likes(postID)
	if err != nil {
		return nil, false, err
	}
	return likes, !liked, nil
}

// DeletePost removes a post. Only its author may delete it; a post that is
// already gone reports not found, even to its author.
func (s *PostService) DeletePost(postID, requesterID string) error {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return err
	}
	if post == nil {
		return apperr.NotFound("Post not found")
	}
	if post.AuthorID != requesterID {
		return apperr.Forbidden("You can only delete your own posts")
	}
	return s.posts.Delete(postID)
}
