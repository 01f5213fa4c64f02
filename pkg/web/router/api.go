package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"gorm.io/gorm"

	"foro-tematico/pkg/common/config"
	forumdao "foro-tematico/pkg/core/forum/repository/dao/impl"
	forumservice "foro-tematico/pkg/core/forum/service"
	userdao "foro-tematico/pkg/core/user/repository/dao/impl"
	userservice "foro-tematico/pkg/core/user/service"
	"foro-tematico/pkg/web/handler"
	"foro-tematico/pkg/web/middleware"
)

// RegisterAPIs 注册所有API路由
func RegisterAPIs(h *server.Hertz, cfg *config.Config, db *gorm.DB) {
	// 初始化仓储、服务与Handler实例
	users := userservice.NewUserService(userdao.NewGormUserRepository(db), 0)
	forum := forumservice.NewForumService(
		forumdao.NewGormPostRepository(db),
		forumdao.NewGormCommentRepository(db),
	)

	healthHandler := handler.NewHealthCheckHandler(db)
	userHandler := handler.NewUserHandler(users)
	forumHandler := handler.NewForumHandler(forum)

	// 注册全局中间件（按执行顺序）
	h.Use(
		middleware.RecoveryMiddleware(cfg),
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.CORSMiddleware(cfg.Middleware.CORS),
		middleware.BodyLimitMiddleware(cfg.Middleware.Security.MaxBodySize),
		middleware.TimeoutMiddleware(cfg.Middleware.Timeout.RequestTimeout),
	)

	h.GET("/health", healthHandler.AdvancedHealthCheck)

	// 用户相关接口，不做会话与角色鉴权
	h.POST("/register", userHandler.Register)
	h.POST("/login", userHandler.Login)

	// 帖子与评论
	h.POST("/create-post", forumHandler.CreatePost)
	h.GET("/posts", forumHandler.ListPosts)
	h.POST("/add-comment", forumHandler.AddComment)
	h.GET("/comments/:postId", forumHandler.ListComments)

	postGroup := h.Group("/posts/:postId")
	{
		postGroup.POST("/comments", forumHandler.AddPostComment)
		postGroup.GET("/comments", forumHandler.ListComments)
	}
}
