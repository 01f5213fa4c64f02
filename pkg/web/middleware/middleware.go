package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/google/uuid"
	"github.com/hertz-contrib/cors"

	"foro-tematico/pkg/common/config"
)

const RequestIDHeader = "X-Request-ID"

// LoggerMiddleware 结构化的请求日志记录，附带处理器挂上的错误
func LoggerMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c)
		latency := time.Since(start)

		hlog.CtxInfof(c, "| %3d | %13v | %15s | %-7s | %s | rid=%s",
			ctx.Response.StatusCode(),
			latency,
			ctx.ClientIP(),
			ctx.Method(),
			ctx.Path(),
			ctx.Response.Header.Get(RequestIDHeader),
		)
		if len(ctx.Errors) > 0 {
			hlog.CtxWarnf(c, "request errors path=%s: %s", ctx.Path(), ctx.Errors.String())
		}
	}
}

// RequestIDMiddleware 透传或生成请求ID
func RequestIDMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		rid := string(ctx.GetHeader(RequestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx.Response.Header.Set(RequestIDHeader, rid)
		ctx.Next(c)
	}
}

/*
	启动时指定环境变量
	export APP_ENV=production
	go run ./cmd/web
*/

// RecoveryMiddleware 异常捕获，生产环境隐藏堆栈
func RecoveryMiddleware(cfg *config.Config) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				stack := string(debug.Stack())

				hlog.CtxErrorf(c, "[PANIC RECOVERED] %v\n%s", err, stack)

				if cfg.IsProd() {
					ctx.AbortWithStatusJSON(500, utils.H{
						"error": "Server error",
					})
				} else {
					ctx.AbortWithStatusJSON(500, utils.H{
						"error": fmt.Sprintf("%v", err),
						"stack": strings.Split(stack, "\n"),
					})
				}
			}
		}()
		ctx.Next(c)
	}
}

// CORSMiddleware 默认放行所有来源，配置了来源列表时按列表与可信域名校验
func CORSMiddleware(corsConfig config.CORSConfig) app.HandlerFunc {
	if corsConfig.AllowAllOrigins || (len(corsConfig.AllowOrigins) == 0 && len(corsConfig.TrustedDomains) == 0) {
		return cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    corsConfig.AllowMethods,
			AllowHeaders:    corsConfig.AllowHeaders,
			ExposeHeaders:   corsConfig.ExposeHeaders,
			MaxAge:          corsConfig.MaxAge,
		})
	}

	allowed := make(map[string]struct{}, len(corsConfig.AllowOrigins))
	for _, o := range corsConfig.AllowOrigins {
		allowed[o] = struct{}{}
	}

	return cors.New(
		cors.Config{
			AllowMethods:     corsConfig.AllowMethods,
			AllowHeaders:     corsConfig.AllowHeaders,
			ExposeHeaders:    corsConfig.ExposeHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAge,
			AllowOriginFunc: func(origin string) bool {
				if _, ok := allowed[origin]; ok {
					return true
				}
				for _, domain := range corsConfig.TrustedDomains {
					if strings.HasSuffix(origin, domain) {
						return true
					}
				}
				return false
			},
		},
	)
}

func TimeoutMiddleware(seconds int) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		if seconds <= 0 {
			ctx.Next(c)
			return
		}
		timeoutCtx, cancel := context.WithTimeout(c, time.Duration(seconds)*time.Second)
		defer cancel()

		done := make(chan struct{})
		var panicErr interface{}

		go func() {
			defer func() {
				if r := recover(); r != nil {
					panicErr = r
				}
				close(done)
			}()
			ctx.Next(timeoutCtx) // 传入超时上下文，GORM 查询随之取消
		}()

		select {
		case <-timeoutCtx.Done():
			<-done
			if panicErr != nil {
				panic(panicErr)
			}
			// 被取消的 GORM 查询已由处理器返回 500，这里只记录
			hlog.CtxWarnf(timeoutCtx, "request timeout path=%s", ctx.Path())
		case <-done:
			if panicErr != nil {
				panic(panicErr) // 交给全局recovery处理
			}
		}
	}
}

// BodyLimitMiddleware 请求体大小限制
func BodyLimitMiddleware(maxBodySize int64) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		if maxBodySize > 0 && int64(ctx.Request.Header.ContentLength()) > maxBodySize {
			hlog.CtxWarnf(c, "request body exceeds max size path=%s size=%d", ctx.Path(), ctx.Request.Header.ContentLength())
			ctx.AbortWithStatusJSON(413, utils.H{"error": "request body exceeds max size"})
			return
		}
		ctx.Next(c)
	}
}
