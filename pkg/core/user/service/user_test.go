package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperr "foro-tematico/pkg/common/errors"
	"foro-tematico/pkg/core/user/model"
)

type fakeUserRepo struct {
	users map[string]model.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]model.User{}}
}

func (f *fakeUserRepo) QueryByUsername(_ context.Context, username string) (model.User, error) {
	if f.err != nil {
		return model.User{}, f.err
	}
	u, ok := f.users[username]
	if !ok {
		return model.User{}, apperr.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.Username]; ok {
		return apperr.ErrDuplicateEntry
	}
	user.ID = int64(len(f.users) + 1)
	f.users[user.Username] = *user
	return nil
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)

	require.NoError(t, svc.Register(context.Background(), "ana", "s3cret", ""))

	stored := repo.users["ana"]
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret")))
	assert.Equal(t, model.DefaultRole, stored.Role)
}

func TestRegisterDuplicate(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)

	require.NoError(t, svc.Register(context.Background(), "ana", "pw", "admin"))
	err := svc.Register(context.Background(), "ana", "pw", "admin")
	assert.ErrorIs(t, err, apperr.ErrDuplicateEntry)
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)

	assert.ErrorIs(t, svc.Register(context.Background(), "", "pw", ""), apperr.ErrBadRequest)
	assert.ErrorIs(t, svc.Register(context.Background(), "ana", "", ""), apperr.ErrBadRequest)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)
	require.NoError(t, svc.Register(context.Background(), "ana", "pw", "moderator"))

	id, err := svc.Login(context.Background(), "ana", "pw")
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: repo.users["ana"].ID, Username: "ana", Role: "moderator"}, id)

	_, wrongPw := svc.Login(context.Background(), "ana", "nope")
	_, unknown := svc.Login(context.Background(), "bob", "pw")
	assert.ErrorIs(t, wrongPw, apperr.ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, apperr.ErrInvalidCredentials)
	assert.Equal(t, wrongPw.Error(), unknown.Error())
}

func TestLoginStorageError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = errors.New("connection refused")
	svc := NewUserService(repo, bcrypt.MinCost)

	_, err := svc.Login(context.Background(), "ana", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrUnauthorized)
}
