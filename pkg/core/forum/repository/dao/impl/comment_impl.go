package dao

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperr "foro-tematico/pkg/common/errors"
	"foro-tematico/pkg/core/forum/model"
	"foro-tematico/pkg/core/forum/repository/dao"
)

type GormCommentRepository struct {
	db *gorm.DB
}

var _ dao.CommentRepository = (*GormCommentRepository)(nil)

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// commentRow 评论与作者用户名的联表结果
type commentRow struct {
	ID        int64
	PostID    int64
	UserID    int64
	Content   string
	CreatedAt time.Time
	Username  string
}

func (row commentRow) view() model.CommentView {
	return model.CommentView{
		ID:        row.ID,
		PostID:    row.PostID,
		UserID:    row.UserID,
		Content:   row.Content,
		Author:    row.Username,
		CreatedAt: row.CreatedAt,
	}
}

func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Table("comments").
		Select("comments.id, comments.post_id, comments.user_id, comments.content, comments.created_at, users.username").
		Joins("JOIN users ON comments.user_id = users.id")
}

func (r *GormCommentRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	return createComment(r.db.WithContext(ctx), comment)
}

func (r *GormCommentRepository) CreateAndFetch(ctx context.Context, comment *model.Comment) (model.CommentView, error) {
	var view model.CommentView
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := createComment(tx, comment); err != nil {
			return err
		}
		var err error
		view, err = queryByID(tx, comment.ID)
		return err
	})
	if err != nil {
		return model.CommentView{}, err
	}
	return view, nil
}

// ListByPost 按创建时间升序，id 作为同一时间戳的次序
func (r *GormCommentRepository) ListByPost(ctx context.Context, postID int64) ([]model.CommentView, error) {
	var rows []commentRow
	err := withAuthor(r.db.WithContext(ctx)).
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Order("comments.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("comment listing failed: %w", apperr.WrapGormError(err, apperr.ErrCommentNotFound))
	}

	views := make([]model.CommentView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.view())
	}
	return views, nil
}

func createComment(db *gorm.DB, comment *model.Comment) error {
	if err := db.Omit(clause.Associations).Create(comment).Error; err != nil {
		return fmt.Errorf("comment creation failed: %w", apperr.WrapGormError(err, apperr.ErrDatabaseInternal))
	}
	return nil
}

func queryByID(db *gorm.DB, id int64) (model.CommentView, error) {
	var rows []commentRow
	err := withAuthor(db).
		Where("comments.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return model.CommentView{}, fmt.Errorf("comment lookup failed: %w", apperr.WrapGormError(err, apperr.ErrCommentNotFound))
	}
	if len(rows) == 0 {
		return model.CommentView{}, apperr.ErrCommentNotFound
	}
	return rows[0].view(), nil
}
