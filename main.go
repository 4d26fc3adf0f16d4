// @title QuizRoom 后端 API
// @version 1.0
// @description 在线答题房间平台的后端服务器。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"
	"path/filepath"

	"quizroom_backend/internal/app"
	"quizroom_backend/internal/config"
	"quizroom_backend/pkg/configwatcher"
	"quizroom_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	// 配置热更新：文件变化时重读，当前只对日志生效，连接类配置需重启
	go configwatcher.WatchConfig(filepath.Join("configs", "config.yaml"), cfg, func(c interface{}) {
		logger.Log.Info("config file reloaded")
	})

	application.Run()
}
