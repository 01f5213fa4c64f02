package model

import "time"

// PostCommentRow 帖子 LEFT JOIN 评论及作者后的一行，评论列可能全为 NULL
type PostCommentRow struct {
	PostID           int64
	PostTitle        string
	PostContent      string
	PostUserID       int64
	PostCreatedAt    time.Time
	PostAuthor       *string
	CommentID        *int64
	CommentContent   *string
	CommentCreatedAt *time.Time
	CommentUserID    *int64
	CommentAuthor    *string
}

// PostView 帖子及其按时间升序的评论
type PostView struct {
	ID        int64
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time
	Comments  []CommentView
}

type CommentView struct {
	ID        int64
	PostID    int64
	UserID    int64
	Content   string
	Author    string
	CreatedAt time.Time
}
