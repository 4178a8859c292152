package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smartstudy/smartstudy-backend/config"
	"github.com/smartstudy/smartstudy-backend/controllers"
	"github.com/smartstudy/smartstudy-backend/middleware"
	"github.com/smartstudy/smartstudy-backend/services"
)

func SetupRouter(r *gin.Engine, db *gorm.DB, cfg *config.Config) *gin.Engine {
	ai := services.NewAIService(cfg)
	progress := services.NewProgressService(db)
	tutor := services.NewTutorService(db, ai)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	api.Use(middleware.DBMiddleware(db))

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register(cfg))
		auth.POST("/login", controllers.Login(cfg))
		auth.POST("/google", controllers.GoogleLogin(cfg))
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(db, cfg))
	{
		users := authed.Group("/users")
		{
			users.GET("/me", controllers.GetMe)
			users.PUT("/me", controllers.UpdateMe)
			users.DELETE("/me", controllers.DeleteMe)
			users.POST("/me/avatar", controllers.UploadAvatar(cfg))
			users.GET("/me/summary", controllers.GetSummary)
			users.POST("/change-password", controllers.ChangePassword)
			users.POST("/upgrade-premium", controllers.UpgradePremium)
		}

		quiz := authed.Group("/quiz")
		{
			quiz.GET("", controllers.GetQuizzes)
			quiz.POST("", controllers.CreateQuiz)
			quiz.POST("/generate", controllers.GenerateQuiz(ai))
			quiz.GET("/:id", controllers.GetQuiz)
			quiz.PUT("/:id", controllers.UpdateQuiz)
			quiz.POST("/:id/submit", controllers.SubmitQuiz)
			quiz.GET("/:id/attempts", controllers.GetQuizAttempts)
		}

		prog := authed.Group("/progress")
		{
			prog.GET("/dashboard", controllers.GetDashboard(progress))
			prog.GET("", controllers.GetProgress)
			prog.POST("", controllers.CreateProgress)
			prog.PUT("/:id", controllers.UpdateProgress)
		}

		tut := authed.Group("/tutor")
		{
			tut.POST("/chat", controllers.Chat(tutor))
			tut.GET("/sessions", controllers.GetSessions(tutor))
		}
	}

	return r
}
