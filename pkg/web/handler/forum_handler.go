package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	apperr "foro-tematico/pkg/common/errors"
	"foro-tematico/pkg/core/forum/service"
	"foro-tematico/pkg/web/model"
)

// msgInvalidBody 请求体无法解析（如 userId 不是数字）
const msgInvalidBody = "Invalid request body"

type ForumHandler struct {
	Forum service.ForumService
}

func NewForumHandler(forum service.ForumService) *ForumHandler {
	return &ForumHandler{Forum: forum}
}

func (h *ForumHandler) CreatePost(ctx context.Context, c *app.RequestContext) {
	var req model.CreatePostReq
	if err := c.BindAndValidate(&req); err != nil {
		respondError(ctx, c, http.StatusBadRequest, msgInvalidBody, err)
		return
	}

	post, err := h.Forum.CreatePost(ctx, req.Title, req.Content, req.UserID.Int64())
	if err != nil {
		respondServiceError(ctx, c, "Failed to create post", err)
		return
	}

	c.JSON(http.StatusCreated, model.CreatePostRes{
		ID:       post.ID,
		Title:    post.Title,
		Content:  post.Content,
		Comments: []model.CommentRes{},
	})
}

func (h *ForumHandler) ListPosts(ctx context.Context, c *app.RequestContext) {
	posts, err := h.Forum.ListPosts(ctx)
	if err != nil {
		respondError(ctx, c, http.StatusInternalServerError, "Failed to fetch posts", err)
		return
	}

	res := make([]model.PostRes, 0, len(posts))
	for _, p := range posts {
		res = append(res, model.NewPostRes(p))
	}
	c.JSON(http.StatusOK, res)
}

// AddComment POST /add-comment，postId 在请求体中
func (h *ForumHandler) AddComment(ctx context.Context, c *app.RequestContext) {
	var req model.AddCommentReq
	if err := c.BindAndValidate(&req); err != nil {
		respondError(ctx, c, http.StatusBadRequest, msgInvalidBody, err)
		return
	}

	if err := h.Forum.AddComment(ctx, req.PostID.Int64(), req.Content, req.UserID.Int64()); err != nil {
		respondServiceError(ctx, c, "Failed to add comment", err)
		return
	}

	c.JSON(http.StatusCreated, model.MessageRes{Message: "Comment added successfully"})
}

// AddPostComment POST /posts/:postId/comments，返回回读的完整评论
func (h *ForumHandler) AddPostComment(ctx context.Context, c *app.RequestContext) {
	postID, err := pathPostID(c)
	if err != nil {
		respondError(ctx, c, http.StatusInternalServerError, "Failed to add comment", err)
		return
	}

	var req model.AddCommentReq
	if err := c.BindAndValidate(&req); err != nil {
		respondError(ctx, c, http.StatusBadRequest, msgInvalidBody, err)
		return
	}

	comment, err := h.Forum.AddCommentDetailed(ctx, postID, req.Content, req.UserID.Int64())
	if err != nil {
		respondServiceError(ctx, c, "Failed to add comment", err)
		return
	}

	c.JSON(http.StatusCreated, model.CreatedCommentRes{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		Author:    comment.Author,
	})
}

// ListComments 同时服务 /comments/:postId 与 /posts/:postId/comments
func (h *ForumHandler) ListComments(ctx context.Context, c *app.RequestContext) {
	postID, err := pathPostID(c)
	if err != nil {
		respondError(ctx, c, http.StatusInternalServerError, "Failed to fetch comments", err)
		return
	}

	comments, err := h.Forum.ListComments(ctx, postID)
	if err != nil {
		respondError(ctx, c, http.StatusInternalServerError, "Failed to fetch comments", err)
		return
	}

	c.JSON(http.StatusOK, model.NewCommentList(comments))
}

func pathPostID(c *app.RequestContext) (int64, error) {
	return strconv.ParseInt(c.Param("postId"), 10, 64)
}

// respondServiceError 缺字段返回 400 及具体提示，其余统一 500
func respondServiceError(ctx context.Context, c *app.RequestContext, internalMsg string, err error) {
	var missing *apperr.MissingFieldError
	if errors.As(err, &missing) {
		respondError(ctx, c, http.StatusBadRequest, missing.Msg, err)
		return
	}
	respondError(ctx, c, http.StatusInternalServerError, internalMsg, err)
}
