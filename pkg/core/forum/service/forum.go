package service

import (
	"context"

	apperr "foro-tematico/pkg/common/errors"
	"foro-tematico/pkg/core/forum/model"
	"foro-tematico/pkg/core/forum/repository/dao"
	"foro-tematico/pkg/core/forum/shaper"
)

type ForumService interface {
	CreatePost(ctx context.Context, title, content string, userID int64) (model.PostView, error)
	ListPosts(ctx context.Context) ([]model.PostView, error)
	AddComment(ctx context.Context, postID int64, content string, userID int64) error
	// AddCommentDetailed 插入后回读完整评论（含作者用户名）
	AddCommentDetailed(ctx context.Context, postID int64, content string, userID int64) (model.CommentView, error)
	ListComments(ctx context.Context, postID int64) ([]model.CommentView, error)
}

type forumService struct {
	posts    dao.PostRepository
	comments dao.CommentRepository
}

func NewForumService(posts dao.PostRepository, comments dao.CommentRepository) ForumService {
	return &forumService{posts: posts, comments: comments}
}

func (s *forumService) CreatePost(ctx context.Context, title, content string, userID int64) (model.PostView, error) {
	if title == "" || content == "" {
		return model.PostView{}, apperr.NewMissingField("Title and content are required", "title", "content")
	}

	post := model.Post{UserID: userID, Title: title, Content: content}
	if err := s.posts.CreatePost(ctx, &post); err != nil {
		return model.PostView{}, err
	}

	return model.PostView{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		Comments:  []model.CommentView{},
	}, nil
}

func (s *forumService) ListPosts(ctx context.Context) ([]model.PostView, error) {
	rows, err := s.posts.ListPostRows(ctx)
	if err != nil {
		return nil, err
	}
	return shaper.ShapePosts(rows), nil
}

func (s *forumService) AddComment(ctx context.Context, postID int64, content string, userID int64) error {
	if content == "" {
		return errContentRequired()
	}
	return s.comments.CreateComment(ctx, &model.Comment{PostID: postID, UserID: userID, Content: content})
}

func (s *forumService) AddCommentDetailed(ctx context.Context, postID int64, content string, userID int64) (model.CommentView, error) {
	if content == "" {
		return model.CommentView{}, errContentRequired()
	}
	return s.comments.CreateAndFetch(ctx, &model.Comment{PostID: postID, UserID: userID, Content: content})
}

func (s *forumService) ListComments(ctx context.Context, postID int64) ([]model.CommentView, error) {
	return s.comments.ListByPost(ctx, postID)
}

func errContentRequired() error {
	return apperr.NewMissingField("Content is required", "content")
}
