// Package sqlite implements the repository interfaces on an embedded
// SQLite database.
package sqlite

import (
	"database/sql"
	"errors"

	"github.com/perchapp/perch-be/internal/models"
)

// UserRepo is the SQLite-backed user repository.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = "id, username, email, password_hash, display_name, bio, avatar_url, created_at"

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.DisplayName, &user.Bio, &user.AvatarURL, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user row.
func (r *UserRepo) Create(user models.User) error {
	stmt, err := r.db.Prepare("INSERT INTO users (" + userColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Username, user.Email, user.PasswordHash,
		user.DisplayName, user.Bio, user.AvatarURL, user.CreatedAt)
	return err
}

// GetByID retrieves a user by id, or nil if absent.
func (r *UserRepo) GetByID(id string) (*models.User, error) {
	return scanUser(r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id))
}

// GetByEmail retrieves a user by email, or nil if absent.
func (r *UserRepo) GetByEmail(email string) (*models.User, error) {
	return scanUser(r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email))
}

// GetByUsernameOrEmail retrieves a user holding either the username or the
// email, or nil if neither is taken.
func (r *UserRepo) GetByUsernameOrEmail(username, email string) (*models.User, error) {
	return scanUser(r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ? OR email = ?", username, email))
}

// UpdateProfile updates only the fields that are non-nil.
func (r *UserRepo) UpdateProfile(id string, displayName, bio, avatarURL *string) error {
	if displayName != nil {
		if _, err := r.db.Exec("UPDATE users SET display_name = ? WHERE id = ?", *displayName, id); err != nil {
			return err
		}
	}
	if bio != nil {
		if _, err := r.db.Exec("UPDATE users SET bio = ? WHERE id = ?", *bio, id); err != nil {
			return err
		}
	}
	if avatarURL != nil {
		if _, err := r.db.Exec("UPDATE users SET avatar_url = ? WHERE id = ?", *avatarURL, id); err != nil {
			return err
		}
	}
	return nil
}

// Search finds users whose username or display name contains the query,
// case-insensitively.
func (r *UserRepo) Search(query string, limit int) ([]models.User, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.Query(
		"SELECT "+userColumns+" FROM users WHERE username LIKE ? OR display_name LIKE ? ORDER BY username LIMIT ?",
		pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.DisplayName, &user.Bio, &user.AvatarURL, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
