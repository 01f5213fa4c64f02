package client

import (
	"context"
	"errors"
)

var (
	ErrEmptyPost  = errors.New("write something before publishing")
	ErrNotMounted = errors.New("view is not mounted")
)

// ForumAPI 视图用到的接口子集
type ForumAPI interface {
	ListPosts(ctx context.Context) ([]Post, error)
	CreatePost(ctx context.Context, title, content string, userID int64) (Post, error)
	AddPostComment(ctx context.Context, postID int64, content string, userID int64) (Comment, error)
}

// View 单页论坛的本地状态。提交成功后重新拉取帖子列表，不在本地合并服务端回显。
type View struct {
	api      ForumAPI
	sessions *SessionStore

	identity *Identity
	posts    []Post

	title     string
	postDraft string
	drafts    map[int64]string
}

func NewView(api ForumAPI, sessions *SessionStore) *View {
	return &View{api: api, sessions: sessions, drafts: map[int64]string{}}
}

// Mount 读取本地身份并加载帖子；没有身份时返回 ErrNotLoggedIn
func (v *View) Mount(ctx context.Context) error {
	id, err := v.sessions.Load()
	if err != nil {
		return err
	}
	v.identity = &id
	return v.Refresh(ctx)
}

// Refresh 重新拉取帖子，已有草稿保留，新帖子的草稿置空
func (v *View) Refresh(ctx context.Context) error {
	if v.identity == nil {
		return ErrNotMounted
	}
	posts, err := v.api.ListPosts(ctx)
	if err != nil {
		return err
	}

	drafts := make(map[int64]string, len(posts))
	for _, p := range posts {
		drafts[p.ID] = v.drafts[p.ID]
	}
	v.posts = posts
	v.drafts = drafts
	return nil
}

func (v *View) Identity() (Identity, bool) {
	if v.identity == nil {
		return Identity{}, false
	}
	return *v.identity, true
}

// Posts 按展示顺序返回（最新的在前）
func (v *View) Posts() []Post {
	out := make([]Post, len(v.posts))
	for i, p := range v.posts {
		out[len(v.posts)-1-i] = p
	}
	return out
}

func (v *View) SetTitle(title string) { v.title = title }
func (v *View) SetPostDraft(content string) { v.postDraft = content }

func (v *View) SetCommentDraft(postID int64, content string) {
	v.drafts[postID] = content
}

func (v *View) CommentDraft(postID int64) string {
	return v.drafts[postID]
}

func (v *View) SubmitPost(ctx context.Context) (Post, error) {
	if v.identity == nil {
		return Post{}, ErrNotMounted
	}
	if v.postDraft == "" {
		return Post{}, ErrEmptyPost
	}

	post, err := v.api.CreatePost(ctx, v.title, v.postDraft, v.identity.UserID)
	if err != nil {
		return Post{}, err
	}
	v.title, v.postDraft = "", ""
	return post, v.Refresh(ctx)
}

func (v *View) SubmitComment(ctx context.Context, postID int64) (Comment, error) {
	if v.identity == nil {
		return Comment{}, ErrNotMounted
	}
	// 空评论交给服务端校验（400）
	comment, err := v.api.AddPostComment(ctx, postID, v.drafts[postID], v.identity.UserID)
	if err != nil {
		return Comment{}, err
	}
	v.drafts[postID] = ""
	return comment, v.Refresh(ctx)
}

// Logout 清除本地身份与视图状态
func (v *View) Logout() error {
	v.identity = nil
	v.posts = nil
	v.title, v.postDraft = "", ""
	v.drafts = map[int64]string{}
	return v.sessions.Clear()
}
