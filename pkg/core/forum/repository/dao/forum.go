package dao

import (
	"context"

	"foro-tematico/pkg/core/forum/model"
)

type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) error
	// ListPostRows 返回帖子与评论、作者联表后的扁平行
	ListPostRows(ctx context.Context) ([]model.PostCommentRow, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	// CreateAndFetch 在同一事务内插入评论并按新 id 回读
	CreateAndFetch(ctx context.Context, comment *model.Comment) (model.CommentView, error)
	ListByPost(ctx context.Context, postID int64) ([]model.CommentView, error)
}
