package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/handlers"
)

type RouterConfig struct {
	SessionHandler    *handlers.SessionHandler
	RenderHandler     *handlers.RenderHandler
	AnnotationHandler *handlers.AnnotationHandler
	ExportHandler     *handlers.ExportHandler
	PreviewHandler    *handlers.PreviewHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Sessions
		api.POST("/sessions", cfg.SessionHandler.Create)
		api.GET("/sessions", cfg.SessionHandler.List)
		api.GET("/sessions/:id", cfg.SessionHandler.Get)
		api.DELETE("/sessions/:id", cfg.SessionHandler.Exit)

		// Rendering
		api.POST("/sessions/:id/render", cfg.RenderHandler.Render)
		api.POST("/sessions/:id/render/zoom", cfg.RenderHandler.Zoom)
		api.GET("/images/:id", cfg.RenderHandler.Image)

		// Annotations
		api.GET("/sessions/:id/annotations", cfg.AnnotationHandler.GetAll)
		api.GET("/sessions/:id/annotations/exercise", cfg.AnnotationHandler.GetExercise)
		api.PUT("/sessions/:id/annotations", cfg.AnnotationHandler.SetPage)
		api.POST("/sessions/:id/annotations/undo", cfg.AnnotationHandler.Undo)
		api.POST("/sessions/:id/annotations/redo", cfg.AnnotationHandler.Redo)
		api.DELETE("/sessions/:id/annotations", cfg.AnnotationHandler.Clear)

		// Export
		api.POST("/sessions/:id/export", cfg.ExportHandler.ExportExercise)
		api.POST("/sessions/:id/export-all", cfg.ExportHandler.ExportAll)

		// Preview
		api.POST("/sessions/:id/preview", cfg.PreviewHandler.Preview)
	}

	return router
}
