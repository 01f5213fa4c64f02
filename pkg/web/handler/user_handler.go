// ----------- pkg/web/handler/user_handler.go -----------
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	apperr "foro-tematico/pkg/common/errors"
	"foro-tematico/pkg/core/user/service"
	"foro-tematico/pkg/web/model"
)

type UserHandler struct {
	Users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// Register 所有失败（重名、插入失败、缺字段）统一返回 500
func (h *UserHandler) Register(ctx context.Context, c *app.RequestContext) {
	var req model.RegisterReq
	if err := c.BindAndValidate(&req); err != nil {
		respondError(ctx, c, http.StatusInternalServerError, "User registration failed", err)
		return
	}

	if err := h.Users.Register(ctx, req.Username, req.Password, req.Role); err != nil {
		respondError(ctx, c, http.StatusInternalServerError, "User registration failed", err)
		return
	}

	c.JSON(http.StatusCreated, model.MessageRes{Message: "User registered successfully"})
}

// Login 不签发令牌，调用方自行保存返回的身份字段
func (h *UserHandler) Login(ctx context.Context, c *app.RequestContext) {
	var req model.LoginReq
	if err := c.BindAndValidate(&req); err != nil {
		respondError(ctx, c, http.StatusUnauthorized, "Invalid credentials", err)
		return
	}

	identity, err := h.Users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, apperr.ErrUnauthorized) {
			hlog.CtxErrorf(ctx, "login lookup failed username=%s: %v", req.Username, err)
		}
		respondError(ctx, c, http.StatusUnauthorized, "Invalid credentials", err)
		return
	}

	c.JSON(http.StatusOK, model.LoginRes{
		Role:     identity.Role,
		UserID:   identity.UserID,
		Username: identity.Username,
	})
}
