package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/perchapp/perch-be/internal/auth"
	"github.com/perchapp/perch-be/internal/database"
	"github.com/perchapp/perch-be/internal/models"
	"github.com/perchapp/perch-be/internal/repository"
	"github.com/perchapp/perch-be/internal/repository/sqlite"
)

// testEnv wires every service against a fresh SQLite database.
type testEnv struct {
	auth    *AuthService
	users   *UserService
	invites *InviteService
	posts   *PostService
	follows *FollowService
	feed    *FeedService

	userRepo   repository.UserRepository
	inviteRepo repository.InviteRepository
	tokens     *auth.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "perch_test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	userRepo := sqlite.NewUserRepo(db)
	inviteRepo := sqlite.NewInviteRepo(db)
	postRepo := sqlite.NewPostRepo(db)
	followRepo := sqlite.NewFollowRepo(db)

	tokens := auth.NewService("test-secret")
	invites := NewInviteService(inviteRepo)

	return &testEnv{
		auth:       NewAuthService(userRepo, invites, tokens),
		users:      NewUserService(userRepo, postRepo, followRepo),
		invites:    invites,
		posts:      NewPostService(postRepo),
		follows:    NewFollowService(followRepo, userRepo),
		feed:       NewFeedService(postRepo),
		userRepo:   userRepo,
		inviteRepo: inviteRepo,
		tokens:     tokens,
	}
}

// newInvite issues a fresh system invite code.
func (e *testEnv) newInvite(t *testing.T) string {
	t.Helper()
	invite, err := e.invites.CreateInvite(models.SystemInviteIssuer)
	require.NoError(t, err)
	return invite.Code
}

// register creates an account through the full invite-gated flow.
func (e *testEnv) register(t *testing.T, username, email string) models.User {
	t.Helper()
	user, _, err := e.auth.Register(username, email, "secret1", e.newInvite(t))
	require.NoError(t, err)
	return user
}
