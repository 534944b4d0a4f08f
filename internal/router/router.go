package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusboard/backend/internal/handler"
	"focusboard/backend/internal/middleware"
	"focusboard/backend/internal/service"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Tasks    *handler.TaskHandler
	Pomodoro *handler.PomodoroHandler
}

func New(sessions *service.SessionService, handlers Handlers, corsOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestLogger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireSession := middleware.Auth(sessions)

	auth := engine.Group("/auth")
	auth.POST("/register", handlers.Auth.Register)
	auth.POST("/login", handlers.Auth.Login)
	auth.POST("/logout", handlers.Auth.Logout)
	auth.GET("/me", requireSession, handlers.Auth.Me)

	tasks := engine.Group("/tasks")
	tasks.Use(requireSession)
	tasks.GET("", handlers.Tasks.List)
	tasks.POST("", handlers.Tasks.Create)
	tasks.DELETE("", handlers.Tasks.DeleteByStatus)
	tasks.PUT("/:id", handlers.Tasks.Update)
	tasks.DELETE("/:id", handlers.Tasks.Delete)

	pomodoro := engine.Group("/pomodoro")
	pomodoro.Use(requireSession)
	pomodoro.GET("", handlers.Pomodoro.GetSettings)
	pomodoro.POST("", handlers.Pomodoro.SaveSettings)

	return engine
}
