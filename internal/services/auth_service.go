package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/perchapp/perch-be/internal/apperr"
	"github.com/perchapp/perch-be/internal/auth"
	"github.com/perchapp/perch-be/internal/models"
	"github.com/perchapp/perch-be/internal/repository"
)

// AuthServiceProvider defines the interface for registration and login.
type AuthServiceProvider interface {
	Register(username, email, password, inviteCode string) (models.User, string, error)
	Login(email, password string) (models.User, string, error)
}

// AuthService provides business logic for account creation and credentials.
type AuthService struct {
	users   repository.UserRepository
	invites InviteServiceProvider
	tokens  *auth.Service
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, invites InviteServiceProvider, tokens *auth.Service) *AuthService {
	return &AuthService{users: users, invites: invites, tokens: tokens}
}

// Register creates a new account gated by a one-time invite code. On
// success the invite is consumed and a signed token is issued.
func (s *AuthService) Register(username, email, password, inviteCode string) (models.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" || inviteCode == "" {
		return models.User{}, "", apperr.Validation("All fields are required")
	}

	if _, err := s.invites.Validate(inviteCode); err != nil {
		return models.User{}, "", err
	}

	existing, err := s.users.GetByUsernameOrEmail(username, email)
	if err != nil {
		return models.User{}, "", err
	}
	if existing != nil {
		return models.User{}, "", apperr.Conflict("Username or email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		DisplayName:  username,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(user); err != nil {
		return models.User{}, "", err
	}

	if err := s.invites.Consume(inviteCode, user.ID); err != nil {
		return models.User{}, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to generate token: %w", err)
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, token, nil
}

// Login verifies credentials and issues a token. The error is identical for
// an unknown email and a wrong password.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	if email == "" || password == "" {
		return models.User{}, "", apperr.Validation("Email and password are required")
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return models.User{}, "", err
	}
	if user == nil {
		return models.User{}, "", apperr.Auth("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, "", apperr.Auth("Invalid credentials")
	}

	token, err := s.tokens.Generate(*user)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to generate token: %w", err)
	}

	user.PasswordHash = ""
	return *user, token, nil
}
