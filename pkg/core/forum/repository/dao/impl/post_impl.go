package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperr "foro-tematico/pkg/common/errors"
	"foro-tematico/pkg/core/forum/model"
	"foro-tematico/pkg/core/forum/repository/dao"
)

const listPostRowsSQL = `
SELECT
	fp.id AS post_id,
	fp.title AS post_title,
	fp.content AS post_content,
	fp.user_id AS post_user_id,
	fp.created_at AS post_created_at,
	u2.username AS post_author,
	c.id AS comment_id,
	c.content AS comment_content,
	c.created_at AS comment_created_at,
	c.user_id AS comment_user_id,
	u.username AS comment_author
FROM forum_posts fp
LEFT JOIN comments c ON fp.id = c.post_id
LEFT JOIN users u ON c.user_id = u.id
LEFT JOIN users u2 ON fp.user_id = u2.id
ORDER BY fp.id ASC, c.created_at ASC, c.id ASC`

type GormPostRepository struct {
	db *gorm.DB
}

var _ dao.PostRepository = (*GormPostRepository)(nil)

func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// CreatePost 不预先检查 user_id 是否存在，依赖外键约束
func (r *GormPostRepository) CreatePost(ctx context.Context, post *model.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return fmt.Errorf("post creation failed: %w", apperr.WrapGormError(err, apperr.ErrDatabaseInternal))
	}
	return nil
}

func (r *GormPostRepository) ListPostRows(ctx context.Context) ([]model.PostCommentRow, error) {
	var rows []model.PostCommentRow
	if err := r.db.WithContext(ctx).Raw(listPostRowsSQL).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("post listing failed: %w", apperr.WrapGormError(err, apperr.ErrDatabaseInternal))
	}
	return rows, nil
}
