package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/perchapp/perch-be/internal/models"
)

// InviteRepo is the SQLite-backed invite repository.
type InviteRepo struct {
	db *sql.DB
}

// NewInviteRepo creates a new InviteRepo.
func NewInviteRepo(db *sql.DB) *InviteRepo {
	return &InviteRepo{db: db}
}

// Create inserts a new unused invite code.
func (r *InviteRepo) Create(invite models.InviteCode) error {
	stmt, err := r.db.Prepare("INSERT INTO invites (code, created_by, created_at, used) VALUES (?, ?, ?, 0)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(invite.Code, invite.CreatedBy, invite.CreatedAt)
	return err
}

// GetByCode retrieves an invite by its code, or nil if absent.
func (r *InviteRepo) GetByCode(code string) (*models.InviteCode, error) {
	var inv models.InviteCode
	row := r.db.QueryRow("SELECT code, created_by, created_at, used, used_by, used_at FROM invites WHERE code = ?", code)
	err := row.Scan(&inv.Code, &inv.CreatedBy, &inv.CreatedAt, &inv.Used, &inv.UsedBy, &inv.UsedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// MarkUsed records the single unused-to-used transition of an invite.
func (r *InviteRepo) MarkUsed(code, userID string, at time.Time) error {
	_, err := r.db.Exec("UPDATE invites SET used = 1, used_by = ?, used_at = ? WHERE code = ?", userID, at, code)
	return err
}

// ListByCreator retrieves the invites a user has issued, newest first.
func (r *InviteRepo) ListByCreator(userID string) ([]models.InviteCode, error) {
	rows, err := r.db.Query(
		"SELECT code, created_by, created_at, used, used_by, used_at FROM invites WHERE created_by = ? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []models.InviteCode
	for rows.Next() {
		var inv models.InviteCode
		if err := rows.Scan(&inv.Code, &inv.CreatedBy, &inv.CreatedAt, &inv.Used, &inv.UsedBy, &inv.UsedAt); err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

// Count returns the total number of invites ever issued.
func (r *InviteRepo) Count() (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM invites").Scan(&n)
	return n, err
}
