// Package shaper folds flat post/comment join rows into nested posts.
package shaper

import "foro-tematico/pkg/core/forum/model"

// ShapePosts groups rows by post id in first-seen order. A row whose comment id
// is nil contributes only its post. Comment order within a post follows row order.
func ShapePosts(rows []model.PostCommentRow) []model.PostView {
	posts := make([]model.PostView, 0)
	index := make(map[int64]int, len(rows))

	for _, row := range rows {
		i, ok := index[row.PostID]
		if !ok {
			posts = append(posts, model.PostView{
				ID:        row.PostID,
				Title:     row.PostTitle,
				Content:   row.PostContent,
				Author:    deref(row.PostAuthor),
				CreatedAt: row.PostCreatedAt,
				Comments:  []model.CommentView{},
			})
			i = len(posts) - 1
			index[row.PostID] = i
		}

		if row.CommentID == nil {
			continue
		}

		c := model.CommentView{
			ID:      *row.CommentID,
			PostID:  row.PostID,
			Content: deref(row.CommentContent),
			Author:  deref(row.CommentAuthor),
		}
		if row.CommentUserID != nil {
			c.UserID = *row.CommentUserID
		}
		if row.CommentCreatedAt != nil {
			c.CreatedAt = *row.CommentCreatedAt
		}
		posts[i].Comments = append(posts[i].Comments, c)
	}

	return posts
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
