package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/config"
	"quill/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	cfg := &config.Config{
		JWTSecret: "test-secret-used-only-in-tests",
		Env:       "test",
	}
	srv := NewServer(cfg, store.NewMemory())

	app := fiber.New()
	srv.SetupRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func signup(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/users", "", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "longenough",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup body: %v", body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestSignupAndLogin(t *testing.T) {
	app := newTestApp(t)

	signup(t, app, "dana")

	resp, body := doJSON(t, app, http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "dana@example.com",
		"password": "longenough",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "dana@example.com",
		"password": "wrong password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFollowEndpoints(t *testing.T) {
	app := newTestApp(t)

	token := signup(t, app, "alice")
	signup(t, app, "bob")

	resp, body := doJSON(t, app, http.MethodPost, "/api/profiles/bob/follow", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := body["profile"].(map[string]any)
	assert.Equal(t, true, profile["following"])

	// Redundant follow is fine.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/profiles/bob/follow", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/profiles/bob/follow", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Redundant unfollow is not.
	resp, body = doJSON(t, app, http.MethodDelete, "/api/profiles/bob/follow", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "NOT_FOLLOWING", body["code"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/profiles/ghost/follow", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestArticleAndFavoriteEndpoints(t *testing.T) {
	app := newTestApp(t)

	authorToken := signup(t, app, "author")
	readerToken := signup(t, app, "reader")

	resp, body := doJSON(t, app, http.MethodPost, "/api/articles", authorToken, map[string]any{
		"title":       "Hello World",
		"description": "greeting",
		"body":        "the body",
		"tag_list":    []string{"greetings"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", body)
	article := body["article"].(map[string]any)
	require.Equal(t, "hello-world", article["slug"])

	// Anonymous read by slug.
	resp, body = doJSON(t, app, http.MethodGet, "/api/articles/hello-world", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello World", body["article"].(map[string]any)["title"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/articles/hello-world/favorite", readerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["article"].(map[string]any)["favorites_count"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/user/favorites", readerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["articles_count"])

	resp, body = doJSON(t, app, http.MethodDelete, "/api/articles/hello-world/favorite", readerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["article"].(map[string]any)["favorites_count"])

	resp, body = doJSON(t, app, http.MethodDelete, "/api/articles/hello-world/favorite", readerToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "NOT_FAVORITED", body["code"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/articles?author=author", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["articles_count"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/tags", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/articles/no-such-slug", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthGuards(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/articles", "", map[string]any{
		"title": "x", "description": "y", "body": "z",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/articles/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/articles", "not-a-token", map[string]any{
		"title": "x", "description": "y", "body": "z",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCommentEndpoints(t *testing.T) {
	app := newTestApp(t)

	authorToken := signup(t, app, "author")
	readerToken := signup(t, app, "reader")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/articles", authorToken, map[string]any{
		"title": "Thread", "description": "d", "body": "b",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/articles/thread/comments", readerToken, map[string]any{
		"body": "nice piece",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	commentID := body["comment"].(map[string]any)["id"].(string)

	// The article author does not own the comment.
	resp, body = doJSON(t, app, http.MethodDelete, "/api/comments/"+commentID, authorToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/comments/"+commentID, readerToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/articles/thread/comments", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["comments"])
}
