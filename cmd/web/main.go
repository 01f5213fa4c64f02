package main

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"foro-tematico/pkg/common/config"
	forummodel "foro-tematico/pkg/core/forum/model"
	"foro-tematico/pkg/web/router"
)

func main() {
	// 初始化配置
	cfg := config.Load()
	if cfg.IsProd() {
		hlog.SetLevel(hlog.LevelInfo)
	} else {
		hlog.SetLevel(hlog.LevelDebug)
	}

	// 初始化数据库连接池
	db, err := cfg.InitDB()
	if err != nil {
		hlog.Fatalf("Failed to initialize database: %v", err)
	}

	if err := forummodel.AutoMigrate(db); err != nil {
		hlog.Fatalf("Failed to migrate schema: %v", err)
	}

	// 创建Hertz实例
	h := server.Default(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(int(cfg.Middleware.Security.MaxBodySize)),
	)

	// 注册路由
	router.RegisterAPIs(h, cfg, db)

	hlog.Infof("Server running on %s (db=%s)", cfg.Server.Address, cfg.Database.Driver)

	// 启动服务
	h.Spin()
}
