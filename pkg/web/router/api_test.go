// pkg/web/router/api_test.go
package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foro-tematico/pkg/common/config"
	forummodel "foro-tematico/pkg/core/forum/model"
	"foro-tematico/pkg/web/router"
)

type postJSON struct {
	ID         int64         `json:"id"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	AuthorPost string        `json:"authorPost"`
	Comments   []commentJSON `json:"comments"`
}

type commentJSON struct {
	ID       int64  `json:"id"`
	Content  string `json:"content"`
	UserID   int64  `json:"user_id"`
	Author   string `json:"author"`
	Username string `json:"username"`
}

func newTestServer(t *testing.T) *server.Hertz {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "forum.db")
	cfg.Database.LogLevel = "silent"

	db, err := cfg.InitDB()
	require.NoError(t, err)
	require.NoError(t, forummodel.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	h := server.New()
	router.RegisterAPIs(h, cfg, db)
	return h
}

func perform(h *server.Hertz, method, path string, body interface{}) *protocol.Response {
	var b *ut.Body
	if body != nil {
		data, _ := json.Marshal(body)
		b = &ut.Body{Body: bytes.NewReader(data), Len: len(data)}
	}
	w := ut.PerformRequest(h.Engine, method, path, b,
		ut.Header{Key: "Content-Type", Value: "application/json"},
		ut.Header{Key: "User-Agent", Value: "router-test"},
	)
	return w.Result()
}

func decode(t *testing.T, resp *protocol.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Body(), v), "body: %s", resp.Body())
}

func registerAndLogin(t *testing.T, h *server.Hertz, username string) int64 {
	t.Helper()
	resp := perform(h, "POST", "/register", map[string]string{"username": username, "password": "secret"})
	require.Equal(t, 201, resp.StatusCode(), "body: %s", resp.Body())

	resp = perform(h, "POST", "/login", map[string]string{"username": username, "password": "secret"})
	require.Equal(t, 200, resp.StatusCode(), "body: %s", resp.Body())
	var login struct {
		UserID int64 `json:"userId"`
	}
	decode(t, resp, &login)
	require.NotZero(t, login.UserID)
	return login.UserID
}

func createPost(t *testing.T, h *server.Hertz, userID int64, title string) postJSON {
	t.Helper()
	resp := perform(h, "POST", "/create-post", map[string]interface{}{
		"title": title, "content": title + " body", "userId": userID,
	})
	require.Equal(t, 201, resp.StatusCode(), "body: %s", resp.Body())
	var post postJSON
	decode(t, resp, &post)
	return post
}

func TestHealthCheckRoute(t *testing.T) {
	h := newTestServer(t)

	resp := perform(h, "GET", "/health", nil)
	require.Equal(t, 200, resp.StatusCode())

	var status struct {
		Status     string `json:"status"`
		Components []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"components"`
	}
	decode(t, resp, &status)
	assert.Equal(t, "healthy", status.Status)
	require.Len(t, status.Components, 1)
	assert.Equal(t, "database", status.Components[0].Name)
	assert.Equal(t, "ok", status.Components[0].Status)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h := newTestServer(t)

	body := map[string]string{"username": "ana", "password": "pw"}
	resp := perform(h, "POST", "/register", body)
	require.Equal(t, 201, resp.StatusCode())
	var msg struct {
		Message string `json:"message"`
	}
	decode(t, resp, &msg)
	assert.Equal(t, "User registered successfully", msg.Message)

	resp = perform(h, "POST", "/register", body)
	assert.Equal(t, 500, resp.StatusCode())
	var errRes struct {
		Error string `json:"error"`
	}
	decode(t, resp, &errRes)
	assert.Equal(t, "User registration failed", errRes.Error)
}

func TestLogin(t *testing.T) {
	h := newTestServer(t)

	resp := perform(h, "POST", "/register", map[string]string{"username": "mod", "password": "pw", "role": "admin"})
	require.Equal(t, 201, resp.StatusCode())

	resp = perform(h, "POST", "/login", map[string]string{"username": "mod", "password": "pw"})
	require.Equal(t, 200, resp.StatusCode())
	var login struct {
		Role     string `json:"role"`
		UserID   int64  `json:"userId"`
		Username string `json:"username"`
	}
	decode(t, resp, &login)
	assert.Equal(t, "admin", login.Role)
	assert.Equal(t, "mod", login.Username)
	assert.NotZero(t, login.UserID)

	wrongPassword := perform(h, "POST", "/login", map[string]string{"username": "mod", "password": "nope"})
	unknownUser := perform(h, "POST", "/login", map[string]string{"username": "ghost", "password": "pw"})
	assert.Equal(t, 401, wrongPassword.StatusCode())
	assert.Equal(t, 401, unknownUser.StatusCode())
	assert.Equal(t, string(wrongPassword.Body()), string(unknownUser.Body()))
}

func TestRegisterDefaultsRole(t *testing.T) {
	h := newTestServer(t)
	registerAndLogin(t, h, "plain")

	resp := perform(h, "POST", "/login", map[string]string{"username": "plain", "password": "secret"})
	var login struct {
		Role string `json:"role"`
	}
	decode(t, resp, &login)
	assert.Equal(t, "user", login.Role)
}

func TestCreatePost(t *testing.T) {
	h := newTestServer(t)
	userID := registerAndLogin(t, h, "writer")

	for _, body := range []map[string]interface{}{
		{"title": "", "content": "C", "userId": userID},
		{"title": "T", "content": "", "userId": userID},
		{"userId": userID},
	} {
		resp := perform(h, "POST", "/create-post", body)
		assert.Equal(t, 400, resp.StatusCode(), "body %v", body)
	}

	resp := perform(h, "POST", "/create-post", map[string]interface{}{"title": "T", "content": "C", "userId": userID})
	require.Equal(t, 201, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), `"comments":[]`)
	var post postJSON
	decode(t, resp, &post)
	assert.NotZero(t, post.ID)
	assert.Equal(t, "T", post.Title)
	assert.Equal(t, "C", post.Content)
	assert.Empty(t, post.Comments)

	resp = perform(h, "GET", "/posts", nil)
	require.Equal(t, 200, resp.StatusCode())
	var posts []postJSON
	decode(t, resp, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)
	assert.Equal(t, "writer", posts[0].AuthorPost)
	assert.NotNil(t, posts[0].Comments)
	assert.Empty(t, posts[0].Comments)
}

func TestCreatePostAcceptsStringUserID(t *testing.T) {
	h := newTestServer(t)
	userID := registerAndLogin(t, h, "browser")

	resp := perform(h, "POST", "/create-post", map[string]interface{}{
		"title": "T", "content": "C", "userId": fmt.Sprint(userID),
	})
	assert.Equal(t, 201, resp.StatusCode(), "body: %s", resp.Body())
}

func TestCreatePostUnknownUser(t *testing.T) {
	h := newTestServer(t)

	resp := perform(h, "POST", "/create-post", map[string]interface{}{"title": "T", "content": "C", "userId": 999})
	assert.Equal(t, 500, resp.StatusCode())
}

func TestAddCommentRequiresContent(t *testing.T) {
	h := newTestServer(t)
	userID := registerAndLogin(t, h, "critic")
	post := createPost(t, h, userID, "topic")

	resp := perform(h, "POST", "/add-comment", map[string]interface{}{"postId": post.ID, "content": "", "userId": userID})
	assert.Equal(t, 400, resp.StatusCode())

	resp = perform(h, "POST", fmt.Sprintf("/posts/%d/comments", post.ID), map[string]interface{}{"content": "", "userId": userID})
	assert.Equal(t, 400, resp.StatusCode())
}

func TestCommentsRoundTrip(t *testing.T) {
	h := newTestServer(t)
	alice := registerAndLogin(t, h, "alice")
	bob := registerAndLogin(t, h, "bob")

	quiet := createPost(t, h, alice, "quiet")
	busy := createPost(t, h, alice, "busy")

	resp := perform(h, "POST", "/add-comment", map[string]interface{}{"postId": busy.ID, "content": "first", "userId": bob})
	require.Equal(t, 201, resp.StatusCode())
	var msg struct {
		Message string `json:"message"`
	}
	decode(t, resp, &msg)
	assert.Equal(t, "Comment added successfully", msg.Message)

	resp = perform(h, "POST", fmt.Sprintf("/posts/%d/comments", busy.ID), map[string]interface{}{"content": "second", "userId": alice})
	require.Equal(t, 201, resp.StatusCode())
	var created commentJSON
	decode(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "second", created.Content)
	assert.Equal(t, "alice", created.Author)

	resp = perform(h, "GET", "/posts", nil)
	require.Equal(t, 200, resp.StatusCode())
	var posts []postJSON
	decode(t, resp, &posts)
	require.Len(t, posts, 2)

	assert.Equal(t, quiet.ID, posts[0].ID)
	assert.Empty(t, posts[0].Comments)

	assert.Equal(t, busy.ID, posts[1].ID)
	require.Len(t, posts[1].Comments, 2)
	assert.Equal(t, "first", posts[1].Comments[0].Content)
	assert.Equal(t, "bob", posts[1].Comments[0].Author)
	assert.Equal(t, bob, posts[1].Comments[0].UserID)
	assert.Equal(t, "second", posts[1].Comments[1].Content)
	assert.Equal(t, created.ID, posts[1].Comments[1].ID)

	flat := perform(h, "GET", fmt.Sprintf("/comments/%d", busy.ID), nil)
	nested := perform(h, "GET", fmt.Sprintf("/posts/%d/comments", busy.ID), nil)
	require.Equal(t, 200, flat.StatusCode())
	require.Equal(t, 200, nested.StatusCode())
	assert.JSONEq(t, string(flat.Body()), string(nested.Body()))

	var listed []commentJSON
	decode(t, flat, &listed)
	require.Len(t, listed, 2)
	assert.Equal(t, "first", listed[0].Content)
	assert.Equal(t, "bob", listed[0].Username)
	assert.Equal(t, "second", listed[1].Content)
	assert.Equal(t, "alice", listed[1].Username)

	resp = perform(h, "GET", fmt.Sprintf("/comments/%d", quiet.ID), nil)
	require.Equal(t, 200, resp.StatusCode())
	assert.JSONEq(t, `[]`, string(resp.Body()))
}

func TestAddCommentUnknownPost(t *testing.T) {
	h := newTestServer(t)
	userID := registerAndLogin(t, h, "lost")

	resp := perform(h, "POST", "/posts/4242/comments", map[string]interface{}{"content": "hello?", "userId": userID})
	assert.Equal(t, 500, resp.StatusCode())

	resp = perform(h, "POST", "/add-comment", map[string]interface{}{"postId": 4242, "content": "hello?", "userId": userID})
	assert.Equal(t, 500, resp.StatusCode())
}

func TestMalformedUserIDIsInvalidBody(t *testing.T) {
	h := newTestServer(t)
	userID := registerAndLogin(t, h, "typo")
	post := createPost(t, h, userID, "topic")

	for _, tc := range []struct {
		path string
		body map[string]interface{}
	}{
		{"/create-post", map[string]interface{}{"title": "T", "content": "C", "userId": "abc"}},
		{"/add-comment", map[string]interface{}{"postId": post.ID, "content": "hi", "userId": "abc"}},
		{fmt.Sprintf("/posts/%d/comments", post.ID), map[string]interface{}{"content": "hi", "userId": "abc"}},
	} {
		resp := perform(h, "POST", tc.path, tc.body)
		assert.Equal(t, 400, resp.StatusCode(), tc.path)
		var errRes struct {
			Error string `json:"error"`
		}
		decode(t, resp, &errRes)
		assert.Equal(t, "Invalid request body", errRes.Error, tc.path)
	}
}
