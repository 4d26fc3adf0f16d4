package app

import (
	"quizroom_backend/docs"
	"quizroom_backend/internal/config"
	"quizroom_backend/internal/middleware"
	"quizroom_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/signup", c.auth.Signup)
		public.POST("/auth/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		auth := authGroup.Group("/auth")
		{
			auth.GET("/me", c.auth.Me)
			auth.PUT("/update", c.auth.Update)
			auth.PUT("/remove-picture", c.auth.RemovePicture)
		}

		rooms := authGroup.Group("/rooms")
		{
			rooms.POST("/create", c.room.Create)
			rooms.GET("/my-rooms", c.room.MyRooms)
			rooms.GET("/search/:roomCode", c.room.Search)
			rooms.GET("/details/:roomCode", c.room.Details)
		}

		authGroup.POST("/questions/generate", c.question.Generate)

		saved := authGroup.Group("/saved-rooms")
		{
			saved.GET("", c.savedRoom.List)
			saved.POST("/add", c.savedRoom.Add)
			saved.DELETE("/remove/:roomCode", c.savedRoom.Remove)
			saved.GET("/check/:roomCode", c.savedRoom.Check)
		}

		quiz := authGroup.Group("/quiz")
		{
			quiz.GET("/check-attempt/:roomCode", c.quiz.CheckAttempt)
			quiz.POST("/start/:roomCode", c.quiz.Start)
			quiz.POST("/submit-answer", c.quiz.SubmitAnswer)
			quiz.POST("/heartbeat", c.quiz.Heartbeat)
			quiz.POST("/complete", c.quiz.Complete)
			quiz.GET("/current-leaderboard/:roomCode/:questionIndex", c.quiz.CurrentLeaderboard)
			quiz.GET("/final-leaderboard/:roomCode", c.quiz.FinalLeaderboard)
		}
	}
}
