package sqlite

import (
	"database/sql"
	"time"
)

// FollowRepo is the SQLite-backed follow-edge repository.
type FollowRepo struct {
	db *sql.DB
}

// NewFollowRepo creates a new FollowRepo.
func NewFollowRepo(db *sql.DB) *FollowRepo {
	return &FollowRepo{db: db}
}

// Exists reports whether the follower currently follows the followee.
func (r *FollowRepo) Exists(followerID, followeeID string) (bool, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM follows WHERE follower_id = ? AND followee_id = ?",
		followerID, followeeID).Scan(&n)
	return n > 0, err
}

// Create adds a follow edge.
func (r *FollowRepo) Create(followerID, followeeID string, at time.Time) error {
	_, err := r.db.Exec("INSERT INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?)",
		followerID, followeeID, at)
	return err
}

// Delete removes a follow edge.
func (r *FollowRepo) Delete(followerID, followeeID string) error {
	_, err := r.db.Exec("DELETE FROM follows WHERE follower_id = ? AND followee_id = ?",
		followerID, followeeID)
	return err
}

// Following returns the ids the user follows.
func (r *FollowRepo) Following(userID string) ([]string, error) {
	return r.listIDs("SELECT followee_id FROM follows WHERE follower_id = ? ORDER BY rowid", userID)
}

// Followers returns the ids of users following the given user.
func (r *FollowRepo) Followers(userID string) ([]string, error) {
	return r.listIDs("SELECT follower_id FROM follows WHERE followee_id = ? ORDER BY rowid", userID)
}

// CountFollowing returns how many users the given user follows.
func (r *FollowRepo) CountFollowing(userID string) (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM follows WHERE follower_id = ?", userID).Scan(&n)
	return n, err
}

// CountFollowers returns how many users follow the given user.
func (r *FollowRepo) CountFollowers(userID string) (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM follows WHERE followee_id = ?", userID).Scan(&n)
	return n, err
}

func (r *FollowRepo) listIDs(query string, args ...any) ([]string, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
