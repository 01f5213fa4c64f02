package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const (
	DefaultServer = "http://localhost:5000"

	dialTimeout    = 10 * time.Second
	requestTimeout = 30 * time.Second
)

// APIError 服务端返回的非 2xx 响应
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_atPost"`
	Author    string    `json:"authorPost"`
	Comments  []Comment `json:"comments"`
}

// Comment 兼容三种返回形状：author / username 二选一
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int64     `json:"user_id,omitempty"`
	Author    string    `json:"author,omitempty"`
	Username  string    `json:"username,omitempty"`
}

// DisplayName 返回作者用户名
func (c Comment) DisplayName() string {
	if c.Author != "" {
		return c.Author
	}
	return c.Username
}

type Identity struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// API 论坛 REST 接口的客户端封装
type API struct {
	baseURL string
	hc      *client.Client
}

func NewAPI(baseURL string) (*API, error) {
	if baseURL == "" {
		baseURL = DefaultServer
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}

	hc, err := client.NewClient(
		client.WithDialTimeout(dialTimeout),
		client.WithClientReadTimeout(requestTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	return &API{baseURL: strings.TrimRight(baseURL, "/"), hc: hc}, nil
}

func (a *API) Register(ctx context.Context, username, password, role string) error {
	body := map[string]string{"username": username, "password": password}
	if role != "" {
		body["role"] = role
	}
	return a.do(ctx, consts.MethodPost, "/register", body, nil)
}

func (a *API) Login(ctx context.Context, username, password string) (Identity, error) {
	var id Identity
	err := a.do(ctx, consts.MethodPost, "/login", map[string]string{"username": username, "password": password}, &id)
	return id, err
}

func (a *API) CreatePost(ctx context.Context, title, content string, userID int64) (Post, error) {
	var post Post
	err := a.do(ctx, consts.MethodPost, "/create-post", map[string]interface{}{
		"title":   title,
		"content": content,
		"userId":  userID,
	}, &post)
	return post, err
}

func (a *API) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	err := a.do(ctx, consts.MethodGet, "/posts", nil, &posts)
	return posts, err
}

// AddComment POST /add-comment，只返回确认信息
func (a *API) AddComment(ctx context.Context, postID int64, content string, userID int64) error {
	return a.do(ctx, consts.MethodPost, "/add-comment", map[string]interface{}{
		"postId":  postID,
		"content": content,
		"userId":  userID,
	}, nil)
}

// AddPostComment POST /posts/:postId/comments，返回新评论
func (a *API) AddPostComment(ctx context.Context, postID int64, content string, userID int64) (Comment, error) {
	var c Comment
	err := a.do(ctx, consts.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), map[string]interface{}{
		"content": content,
		"userId":  userID,
	}, &c)
	return c, err
}

// ListComments nested 为 true 时走 /posts/:postId/comments
func (a *API) ListComments(ctx context.Context, postID int64, nested bool) ([]Comment, error) {
	path := fmt.Sprintf("/comments/%d", postID)
	if nested {
		path = fmt.Sprintf("/posts/%d/comments", postID)
	}
	var comments []Comment
	err := a.do(ctx, consts.MethodGet, path, nil, &comments)
	return comments, err
}

func (a *API) do(ctx context.Context, method, path string, body, out interface{}) error {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(method)
	req.SetRequestURI(a.baseURL + path)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		req.Header.SetContentTypeBytes([]byte(consts.MIMEApplicationJSON))
		req.SetBody(data)
	}

	// hertz 的 Do 不感知 ctx 截止时间，需显式传入
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = a.hc.DoDeadline(ctx, req, resp, deadline)
	} else {
		err = a.hc.Do(ctx, req, resp)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(resp.Body(), &e)
		return &APIError{Status: status, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
