package sqlite

import (
	"database/sql"
	"errors"

	"github.com/perchapp/perch-be/internal/models"
)

// PostRepo is the SQLite-backed post repository.
type PostRepo struct {
	db *sql.DB
}

// NewPostRepo creates a new PostRepo.
func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db}
}

// Posts are returned newest-first; rowid breaks created_at ties so equal
// timestamps keep insertion order (later insert first).
const postSelect = `
	SELECT p.id, p.author_id, p.content, p.created_at, u.username, u.display_name, u.avatar_url
	FROM posts p
	JOIN users u ON u.id = p.author_id`

const postOrder = " ORDER BY p.created_at DESC, p.rowid DESC"

// Create inserts a new post row.
func (r *PostRepo) Create(post models.Post) error {
	stmt, err := r.db.Prepare("INSERT INTO posts (id, author_id, content, created_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(post.ID, post.AuthorID, post.Content, post.CreatedAt)
	return err
}

// GetByID retrieves a single post with its likes, or nil if absent.
func (r *PostRepo) GetByID(id string) (*models.Post, error) {
	var post models.Post
	row := r.db.QueryRow(postSelect+" WHERE p.id = ?", id)
	err := row.Scan(&post.ID, &post.AuthorID, &post.Content, &post.CreatedAt,
		&post.Username, &post.DisplayName, &post.AvatarURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if post.Likes, err = r.Likes(post.ID); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListAll retrieves every post, newest first.
func (r *PostRepo) ListAll() ([]models.Post, error) {
	return r.list(postSelect + postOrder)
}

// ListByAuthor retrieves a single author's posts, newest first.
func (r *PostRepo) ListByAuthor(authorID string) ([]models.Post, error) {
	return r.list(postSelect+" WHERE p.author_id = ?"+postOrder, authorID)
}

// ListFeed retrieves posts authored by the viewer or by anyone the viewer
// follows, newest first.
func (r *PostRepo) ListFeed(viewerID string) ([]models.Post, error) {
	return r.list(postSelect+` WHERE p.author_id = ?
		OR p.author_id IN (SELECT followee_id FROM follows WHERE follower_id = ?)`+postOrder,
		viewerID, viewerID)
}

func (r *PostRepo) list(query string, args ...any) ([]models.Post, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Content, &post.CreatedAt,
			&post.Username, &post.DisplayName, &post.AvatarURL); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		if posts[i].Likes, err = r.Likes(posts[i].ID); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// Delete removes a post; its likes go with it via ON DELETE CASCADE.
func (r *PostRepo) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM posts WHERE id = ?", id)
	return err
}

// CountByAuthor returns how many posts a user has authored.
func (r *PostRepo) CountByAuthor(authorID string) (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM posts WHERE author_id = ?", authorID).Scan(&n)
	return n, err
}

// HasLike reports whether the user currently likes the post.
func (r *PostRepo) HasLike(postID, userID string) (bool, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM post_likes WHERE post_id = ? AND user_id = ?", postID, userID).Scan(&n)
	return n > 0, err
}

// AddLike adds the user to the post's like set.
func (r *PostRepo) AddLike(postID, userID string) error {
	_, err := r.db.Exec("INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)", postID, userID)
	return err
}

// RemoveLike removes the user from the post's like set.
func (r *PostRepo) RemoveLike(postID, userID string) error {
	_, err := r.db.Exec("DELETE FROM post_likes WHERE post_id = ? AND user_id = ?", postID, userID)
	return err
}

// Likes returns the ids of users who like the post. Never nil, so the like
// set serializes as an empty array rather than null.
func (r *PostRepo) Likes(postID string) ([]string, error) {
	rows, err := r.db.Query("SELECT user_id FROM post_likes WHERE post_id = ? ORDER BY rowid", postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		likes = append(likes, userID)
	}
	return likes, rows.Err()
}
