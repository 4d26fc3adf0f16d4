package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizroom_backend/internal/config"
	"quizroom_backend/internal/controller"
	"quizroom_backend/internal/repository"
	"quizroom_backend/internal/service"
	"quizroom_backend/internal/util"
	"quizroom_backend/pkg/database"
	"quizroom_backend/pkg/logger"
	"quizroom_backend/pkg/monitoring"
	"quizroom_backend/pkg/security"
	"quizroom_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services

	sweeperStop chan struct{}
}

type repositories struct {
	user      *repository.UserRepository
	room      *repository.RoomRepository
	question  *repository.QuestionRepository
	attempt   *repository.AttemptRepository
	savedRoom *repository.SavedRoomRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	room        *service.RoomService
	savedRoom   *service.SavedRoomService
	quiz        *service.QuizService
	leaderboard *service.LeaderboardService
	ai          *service.AIService
	storage     service.StorageProvider
}

type controllers struct {
	auth      *controller.AuthController
	room      *controller.RoomController
	quiz      *controller.QuizController
	savedRoom *controller.SavedRoomController
	question  *controller.QuestionController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		room:      repository.NewRoomRepository(db),
		question:  repository.NewQuestionRepository(db),
		attempt:   repository.NewAttemptRepository(db),
		savedRoom: repository.NewSavedRoomRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage provider", zap.Error(err))
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.room = service.NewRoomService(repos.room, repos.question, db)
	s.savedRoom = service.NewSavedRoomService(repos.savedRoom, repos.room)
	s.leaderboard = service.NewLeaderboardService(repos.room, repos.question, repos.attempt, rdb)
	s.quiz = service.NewQuizService(repos.attempt, repos.room, repos.question, s.leaderboard, cfg, db)
	s.ai = service.NewAIService(cfg.AI)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth, s.user),
		room:      controller.NewRoomController(s.room),
		quiz:      controller.NewQuizController(s.quiz, s.leaderboard),
		savedRoom: controller.NewSavedRoomController(s.savedRoom),
		question:  controller.NewQuestionController(s.ai),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 定期把心跳超时的 in-progress 答题记录转为 abandoned
func (a *App) startBackgroundTasks(s *services) {
	a.sweeperStop = make(chan struct{})
	interval := a.Config.Quiz.SweepInterval()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				swept, err := s.quiz.SweepAbandoned(context.Background())
				if err != nil {
					logger.Log.Error("abandonment sweep error", zap.Error(err))
					continue
				}
				if swept > 0 {
					logger.Log.Info("abandonment sweep", zap.Int("swept", swept))
				}
			case <-a.sweeperStop:
				return
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("quizroom-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.sweeperStop != nil {
		close(a.sweeperStop)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
