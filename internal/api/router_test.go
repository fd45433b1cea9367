package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perchapp/perch-be/internal/auth"
	"github.com/perchapp/perch-be/internal/database"
	"github.com/perchapp/perch-be/internal/models"
	"github.com/perchapp/perch-be/internal/repository/sqlite"
	"github.com/perchapp/perch-be/internal/services"
)

type testServer struct {
	router  *chi.Mux
	invites *services.InviteService
}

func newTestServer(t *testing.T) *testServer {
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
	inviteService := services.NewInviteService(inviteRepo)
	authService := services.NewAuthService(userRepo, inviteService, tokens)
	userService := services.NewUserService(userRepo, postRepo, followRepo)
	postService := services.NewPostService(postRepo)
	followService := services.NewFollowService(followRepo, userRepo)
	feedService := services.NewFeedService(postRepo)

	router := NewRouter(tokens, authService, userService, inviteService, postService, followService, feedService)
	return &testServer{router: router, invites: inviteService}
}

// do performs a JSON request against the router and decodes the response
// body into a generic map.
func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		require.NoError(t, json.NewEncoder(reqBody).Encode(body))
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var decoded map[string]any
	if len(rec.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec.Code, decoded
}

// doList is do for endpoints returning a JSON array.
func (s *testServer) doList(t *testing.T, method, path, token string) (int, []any) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var decoded []any
	if len(rec.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec.Code, decoded
}

// register creates an account via the HTTP surface and returns (userID, token).
func (s *testServer) register(t *testing.T, username, email string) (string, string) {
	t.Helper()

	invite, err := s.invites.CreateInvite(models.SystemInviteIssuer)
	require.NoError(t, err)

	status, resp := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":   username,
		"email":      email,
		"password":   "secret1",
		"inviteCode": invite.Code,
	})
	require.Equal(t, http.StatusCreated, status)

	user := resp["user"].(map[string]any)
	return user["id"].(string), resp["token"].(string)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	status, resp := s.do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", resp["status"])
}

func TestStatus(t *testing.T) {
	s := newTestServer(t)

	status, resp := s.do(t, http.MethodGet, "/api/v1/status", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "uptimeSeconds")
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	invite, err := s.invites.CreateInvite(models.SystemInviteIssuer)
	require.NoError(t, err)

	status, resp := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":   "alice",
		"email":      "alice@x.com",
		"password":   "secret1",
		"inviteCode": invite.Code,
	})
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, resp["token"])
	user := resp["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	// The hash must never appear in a response.
	assert.NotContains(t, user, "passwordHash")

	// Same invite again is rejected.
	status, resp = s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":   "bob",
		"email":      "bob@x.com",
		"password":   "secret1",
		"inviteCode": invite.Code,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invite_invalid", resp["kind"])

	status, resp = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "alice@x.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, resp["token"])

	status, resp = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "alice@x.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "auth", resp["kind"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/v1/me", "/api/v1/posts", "/api/v1/invites"} {
		status, _ := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}
}

func TestPostLifecycle(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceToken := s.register(t, "alice", "alice@x.com")
	_, bobToken := s.register(t, "bob", "bob@x.com")

	// Alice posts.
	status, post := s.do(t, http.MethodPost, "/api/v1/posts", aliceToken, map[string]string{
		"content": "hello",
	})
	require.Equal(t, http.StatusCreated, status)
	postID := post["id"].(string)
	assert.Equal(t, "hello", post["content"])
	assert.Equal(t, aliceID, post["userId"])

	// Over-long content is rejected.
	status, resp := s.do(t, http.MethodPost, "/api/v1/posts", aliceToken, map[string]string{
		"content": strings.Repeat("a", models.MaxPostLength+1),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation", resp["kind"])

	// Bob follows Alice and sees her post in his feed.
	status, follow := s.do(t, http.MethodPost, "/api/v1/users/"+aliceID+"/follow", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, follow["following"])
	assert.Equal(t, float64(1), follow["followingCount"])

	status, feed := s.doList(t, http.MethodGet, "/api/v1/posts", bobToken)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, feed, 1)

	// Bob likes, then unlikes.
	status, like := s.do(t, http.MethodPost, "/api/v1/posts/"+postID+"/like", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, like["liked"])
	assert.Len(t, like["likes"], 1)

	status, like = s.do(t, http.MethodPost, "/api/v1/posts/"+postID+"/like", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, like["liked"])
	assert.Len(t, like["likes"], 0)

	// Only the author may delete.
	status, resp = s.do(t, http.MethodDelete, "/api/v1/posts/"+postID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", resp["kind"])

	status, _ = s.do(t, http.MethodDelete, "/api/v1/posts/"+postID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, status)

	// Re-delete reports not found, not forbidden.
	status, resp = s.do(t, http.MethodDelete, "/api/v1/posts/"+postID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", resp["kind"])

	status, feed = s.doList(t, http.MethodGet, "/api/v1/posts", bobToken)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, feed)
}

func TestMeAndProfile(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceToken := s.register(t, "alice", "alice@x.com")
	_, bobToken := s.register(t, "bob", "bob@x.com")

	status, me := s.do(t, http.MethodGet, "/api/v1/me", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, aliceID, me["id"])

	status, me = s.do(t, http.MethodPut, "/api/v1/me", aliceToken, map[string]string{
		"bio": "gopher",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "gopher", me["bio"])
	assert.Equal(t, "alice", me["displayName"])

	status, _ = s.do(t, http.MethodPost, "/api/v1/posts", aliceToken, map[string]string{"content": "hi"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = s.do(t, http.MethodPost, "/api/v1/users/"+aliceID+"/follow", bobToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, profile := s.do(t, http.MethodGet, "/api/v1/users/"+aliceID, bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), profile["postsCount"])
	assert.Equal(t, float64(1), profile["followersCount"])
	assert.Equal(t, true, profile["isFollowing"])

	// Self-follow is rejected.
	status, resp := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%s/follow", aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation", resp["kind"])

	status, results := s.doList(t, http.MethodGet, "/api/v1/users?q=ali", bobToken)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, results, 1)
}

func TestInviteEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "alice", "alice@x.com")

	status, resp := s.do(t, http.MethodPost, "/api/v1/invites", token, nil)
	require.Equal(t, http.StatusOK, status)
	code := resp["inviteCode"].(string)
	assert.Len(t, code, 8)

	status, invites := s.doList(t, http.MethodGet, "/api/v1/invites", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, invites, 1)
	created := invites[0].(map[string]any)
	assert.Equal(t, code, created["code"])
	assert.Equal(t, false, created["used"])
}
