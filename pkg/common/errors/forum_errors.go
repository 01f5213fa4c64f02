// pkg/common/errors/forum_errors.go

/*
  - 使用实例
    if errors.Is(err, apperr.ErrBadRequest) {
    // 返回 400
    }

    // 附加到请求上下文，由日志中间件统一输出:
    c.Error(apperr.Public(err, meta))
*/
package errors

import (
	"errors"
	"fmt"

	hzte "github.com/cloudwego/hertz/pkg/common/errors"
)

// 错误分类：400 / 401 / 500
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

// 存储层错误
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrDuplicateEntry   = fmt.Errorf("%w: username already exists", ErrInternal)
	ErrDatabaseInternal = fmt.Errorf("%w: database internal error", ErrInternal)
	ErrMissingReference = fmt.Errorf("%w: referenced post or user does not exist", ErrInternal)
)

// ErrInvalidCredentials 用户不存在与密码错误不做区分
var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)

// MissingFieldError 必填字段为空
type MissingFieldError struct {
	Fields []string
	Msg    string
}

func (e *MissingFieldError) Error() string {
	return e.Msg
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrBadRequest
}

func NewMissingField(msg string, fields ...string) *MissingFieldError {
	return &MissingFieldError{Fields: fields, Msg: msg}
}

// Public 包装成 Hertz 错误类型，便于挂到 RequestContext.Errors
func Public(err error, meta interface{}) *hzte.Error {
	return hzte.New(err, hzte.ErrorTypePublic, meta)
}

// Private 内部错误，不对外暴露
func Private(err error, meta interface{}) *hzte.Error {
	return hzte.New(err, hzte.ErrorTypePrivate, meta)
}
