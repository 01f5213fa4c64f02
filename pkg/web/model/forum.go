package model

import (
	"time"

	forummodel "foro-tematico/pkg/core/forum/model"
)

// 请求/响应数据结构
type (
	RegisterReq struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	LoginReq struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	LoginRes struct {
		Role     string `json:"role"`
		UserID   int64  `json:"userId"`
		Username string `json:"username"`
	}

	CreatePostReq struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		UserID  ID     `json:"userId"`
	}

	CreatePostRes struct {
		ID       int64        `json:"id"`
		Title    string       `json:"title"`
		Content  string       `json:"content"`
		Comments []CommentRes `json:"comments"`
	}

	// AddCommentReq 同时用于 /add-comment 与 /posts/:postId/comments，后者忽略 PostID
	AddCommentReq struct {
		PostID  ID     `json:"postId"`
		Content string `json:"content"`
		UserID  ID     `json:"userId"`
	}

	MessageRes struct {
		Message string `json:"message"`
	}

	ErrorRes struct {
		Error string `json:"error"`
	}
)

// PostRes GET /posts 中的帖子
type PostRes struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	CreatedAtPost time.Time    `json:"created_atPost"`
	AuthorPost    string       `json:"authorPost"`
	Comments      []CommentRes `json:"comments"`
}

// CommentRes GET /posts 中嵌套的评论
type CommentRes struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int64     `json:"user_id"`
	Author    string    `json:"author"`
}

// CommentListItem GET /comments/:postId 的列表项
type CommentListItem struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
}

// CreatedCommentRes POST /posts/:postId/comments 回读的评论
type CreatedCommentRes struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    string    `json:"author"`
}

func NewPostRes(p forummodel.PostView) PostRes {
	comments := make([]CommentRes, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, CommentRes{
			ID:        c.ID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			UserID:    c.UserID,
			Author:    c.Author,
		})
	}
	return PostRes{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		CreatedAtPost: p.CreatedAt,
		AuthorPost:    p.Author,
		Comments:      comments,
	}
}

func NewCommentList(views []forummodel.CommentView) []CommentListItem {
	items := make([]CommentListItem, 0, len(views))
	for _, c := range views {
		items = append(items, CommentListItem{
			ID:        c.ID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Username:  c.Author,
		})
	}
	return items
}
