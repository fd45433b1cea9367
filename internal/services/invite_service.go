package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/perchapp/perch-be/internal/apperr"
	"github.com/perchapp/perch-be/internal/models"
	"github.com/perchapp/perch-be/internal/repository"
)

const (
	inviteCodeLength = 8
	inviteCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeAttempts  = 10
)

// InviteServiceProvider defines the interface for the invite gate.
type InviteServiceProvider interface {
	CreateInvite(byUserID string) (models.InviteCode, error)
	Validate(code string) (*models.InviteCode, error)
	Consume(code, usedBy string) error
	ListByCreator(userID string) ([]models.InviteCode, error)
	EnsureBootstrapInvite() (string, bool, error)
}

// InviteService provides business logic for one-time invite codes.
type InviteService struct {
	invites repository.InviteRepository
}

// NewInviteService creates a new InviteService.
func NewInviteService(invites repository.InviteRepository) *InviteService {
	return &InviteService{invites: invites}
}

// CreateInvite generates a fresh unused invite code on behalf of a user.
// Codes are random and collision-checked against every stored code.
func (s *InviteService) CreateInvite(byUserID string) (models.InviteCode, error) {
	code, err := s.generateUniqueCode()
	if err != nil {
		return models.InviteCode{}, err
	}

	invite := models.InviteCode{
		Code:      code,
		CreatedBy: byUserID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.invites.Create(invite); err != nil {
		return models.InviteCode{}, err
	}
	return invite, nil
}

// Validate checks that a code exists and is still unused, without consuming it.
func (s *InviteService) Validate(code string) (*models.InviteCode, error) {
	invite, err := s.invites.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if invite == nil || invite.Used {
		return nil, apperr.InviteInvalid("Invalid or already used invite code")
	}
	return invite, nil
}

// Consume marks a code as used by the given user. The unused-to-used
// transition happens at most once per code.
func (s *InviteService) Consume(code, usedBy string) error {
	if _, err := s.Validate(code); err != nil {
		return err
	}
	return s.invites.MarkUsed(code, usedBy, time.Now().UTC())
}

// ListByCreator returns the invites a user has issued.
func (s *InviteService) ListByCreator(userID string) ([]models.InviteCode, error) {
	invites, err := s.invites.ListByCreator(userID)
	if err != nil {
		return nil, err
	}
	if invites == nil {
		invites = []models.InviteCode{}
	}
	return invites, nil
}

// EnsureBootstrapInvite creates a system-issued invite if no invites exist
// yet, so the very first account can be registered. It returns the code and
// whether one was created by this call.
func (s *InviteService) EnsureBootstrapInvite() (string, bool, error) {
	count, err := s.invites.Count()
	if err != nil {
		return "", false, err
	}
	if count > 0 {
		return "", false, nil
	}

	code, err := s.generateUniqueCode()
	if err != nil {
		return "", false, err
	}
	invite := models.InviteCode{
		Code:      code,
		CreatedBy: models.SystemInviteIssuer,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.invites.Create(invite); err != nil {
		return "", false, err
	}
	return code, true, nil
}

func (s *InviteService) generateUniqueCode() (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := generateCode()
		existing, err := s.invites.GetByCode(code)
		if err != nil {
			return "", fmt.Errorf("failed to check code existence: %w", err)
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique invite code after %d attempts", maxCodeAttempts)
}

// generateCode generates a random invite code.
func generateCode() string {
	code := make([]byte, inviteCodeLength)
	for i := range code {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeChars))))
		code[i] = inviteCodeChars[n.Int64()]
	}
	return string(code)
}
