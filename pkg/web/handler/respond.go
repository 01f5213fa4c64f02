package handler

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	apperr "foro-tematico/pkg/common/errors"
	"foro-tematico/pkg/web/model"
)

// 统一错误响应方法：服务端记录原始错误，客户端只拿到通用提示
func respondError(ctx context.Context, c *app.RequestContext, status int, msg string, err error) {
	if err != nil {
		meta := map[string]interface{}{"path": string(c.Path()), "status": status}
		if status >= http.StatusInternalServerError {
			hlog.CtxErrorf(ctx, "%s: %v", msg, err)
			_ = c.Error(apperr.Private(err, meta))
		} else {
			_ = c.Error(apperr.Public(err, meta))
		}
	}
	c.JSON(status, model.ErrorRes{Error: msg})
}
