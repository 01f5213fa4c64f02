package dao

import (
	"context"

	"foro-tematico/pkg/core/user/model"
)

type UserRepository interface {
	QueryByUsername(ctx context.Context, username string) (model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
}
