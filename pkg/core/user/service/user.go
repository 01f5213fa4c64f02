package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperr "foro-tematico/pkg/common/errors"
	"foro-tematico/pkg/core/user/model"
	"foro-tematico/pkg/core/user/repository/dao"
)

// Identity 登录成功后返回给调用方的身份信息，不签发令牌
type Identity struct {
	UserID   int64
	Username string
	Role     string
}

type UserService interface {
	Register(ctx context.Context, username, password, role string) error
	Login(ctx context.Context, username, password string) (Identity, error)
}

type userService struct {
	repo dao.UserRepository
	cost int
}

// NewUserService cost 为 0 时使用 bcrypt.DefaultCost
func NewUserService(repo dao.UserRepository, cost int) UserService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &userService{repo: repo, cost: cost}
}

// Register 角色只做存储，不参与任何鉴权
func (s *userService) Register(ctx context.Context, username, password, role string) error {
	if username == "" || password == "" {
		return apperr.NewMissingField("username and password are required", "username", "password")
	}
	if role == "" {
		role = model.DefaultRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("%w: hash password: %v", apperr.ErrInternal, err)
	}

	return s.repo.CreateUser(ctx, &model.User{
		Username: username,
		Password: string(hashed),
		Role:     role,
	})
}

func (s *userService) Login(ctx context.Context, username, password string) (Identity, error) {
	user, err := s.repo.QueryByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			return Identity{}, apperr.ErrInvalidCredentials
		}
		return Identity{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return Identity{}, apperr.ErrInvalidCredentials
	}

	return Identity{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}
