package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "foro-tematico/pkg/common/errors"
	"foro-tematico/pkg/core/forum/model"
)

type fakePosts struct {
	created []model.Post
	rows    []model.PostCommentRow
	err     error
}

func (f *fakePosts) CreatePost(_ context.Context, post *model.Post) error {
	if f.err != nil {
		return f.err
	}
	post.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *post)
	return nil
}

func (f *fakePosts) ListPostRows(context.Context) ([]model.PostCommentRow, error) {
	return f.rows, f.err
}

type fakeComments struct {
	created []model.Comment
}

func (f *fakeComments) CreateComment(_ context.Context, c *model.Comment) error {
	c.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *c)
	return nil
}

func (f *fakeComments) CreateAndFetch(ctx context.Context, c *model.Comment) (model.CommentView, error) {
	if err := f.CreateComment(ctx, c); err != nil {
		return model.CommentView{}, err
	}
	return f.view(c.ID)
}

func (f *fakeComments) view(id int64) (model.CommentView, error) {
	for _, c := range f.created {
		if c.ID == id {
			return model.CommentView{ID: c.ID, PostID: c.PostID, UserID: c.UserID, Content: c.Content, Author: "user"}, nil
		}
	}
	return model.CommentView{}, apperr.ErrCommentNotFound
}

func (f *fakeComments) ListByPost(_ context.Context, postID int64) ([]model.CommentView, error) {
	var out []model.CommentView
	for _, c := range f.created {
		if c.PostID == postID {
			out = append(out, model.CommentView{ID: c.ID, PostID: c.PostID, Content: c.Content})
		}
	}
	return out, nil
}

func TestCreatePostValidation(t *testing.T) {
	posts := &fakePosts{}
	svc := NewForumService(posts, &fakeComments{})

	_, err := svc.CreatePost(context.Background(), "", "body", 1)
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
	_, err = svc.CreatePost(context.Background(), "title", "", 1)
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
	assert.Empty(t, posts.created)

	post, err := svc.CreatePost(context.Background(), "T", "C", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.ID)
	assert.Equal(t, "T", post.Title)
	require.NotNil(t, post.Comments)
	assert.Empty(t, post.Comments)
}

func TestCreatePostStorageError(t *testing.T) {
	svc := NewForumService(&fakePosts{err: apperr.ErrDatabaseInternal}, &fakeComments{})

	_, err := svc.CreatePost(context.Background(), "T", "C", 1)
	assert.ErrorIs(t, err, apperr.ErrInternal)
	var missing *apperr.MissingFieldError
	assert.False(t, errors.As(err, &missing))
}

func TestAddCommentValidation(t *testing.T) {
	comments := &fakeComments{}
	svc := NewForumService(&fakePosts{}, comments)

	assert.ErrorIs(t, svc.AddComment(context.Background(), 1, "", 1), apperr.ErrBadRequest)
	_, err := svc.AddCommentDetailed(context.Background(), 1, "", 1)
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
	assert.Empty(t, comments.created)

	require.NoError(t, svc.AddComment(context.Background(), 1, "hi", 2))
	view, err := svc.AddCommentDetailed(context.Background(), 1, "again", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), view.ID)
	assert.Equal(t, "again", view.Content)

	listed, err := svc.ListComments(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestListPostsShapesRows(t *testing.T) {
	id := int64(9)
	content := "reply"
	svc := NewForumService(&fakePosts{rows: []model.PostCommentRow{
		{PostID: 1, PostTitle: "a"},
		{PostID: 2, PostTitle: "b", CommentID: &id, CommentContent: &content},
	}}, &fakeComments{})

	posts, err := svc.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Empty(t, posts[0].Comments)
	require.Len(t, posts[1].Comments, 1)
	assert.Equal(t, "reply", posts[1].Comments[0].Content)
}
