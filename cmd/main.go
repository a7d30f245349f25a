package main

import (
	"fmt"
	"os"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/annotations"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/clients/redis"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/db"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/export"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/handlers"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/render"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/repos"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/server"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	centerLocation := utils.GetEnv("CENTER_LOCATION", "", log)

	// Sqlite
	sqliteService, err := db.NewSqliteService(log)
	if err != nil {
		log.Error("Sqlite init failed", "error", err)
		os.Exit(1)
	}
	if err = sqliteService.AutoMigrateAll(); err != nil {
		log.Error("Sqlite auto migration failed", "error", err)
		os.Exit(1)
	}
	theDB := sqliteService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	sessionRepo := repos.NewLessonSessionRepo(theDB, log)

	// Annotation persistence: redis when reachable, memory otherwise.
	persist, err := redis.NewAnnotationPersistence(log)
	if err != nil {
		log.Warn("Redis unavailable, annotations will not survive restarts", "error", err)
		persist = annotations.NewMemoryPersistence()
	}
	annotationManager := annotations.NewManager(log, persist)

	// Rendering
	log.Info("Setting up render pipeline from main...")
	pipeline := render.NewPipeline(log)
	defer pipeline.Close()
	previewer := render.NewPreviewer(log)
	exporter := export.NewExporter(log)

	// Handlers
	log.Info("Setting up handlers from main...")
	sessionHandler := handlers.NewSessionHandler(sessionRepo, annotationManager, log)
	renderHandler := handlers.NewRenderHandler(pipeline, sessionRepo, centerLocation, log)
	annotationHandler := handlers.NewAnnotationHandler(annotationManager, log)
	exportHandler := handlers.NewExportHandler(exporter, annotationManager, sessionRepo, centerLocation, log)
	previewHandler := handlers.NewPreviewHandler(previewer, pipeline, annotationManager, log)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		SessionHandler:    sessionHandler,
		RenderHandler:     renderHandler,
		AnnotationHandler: annotationHandler,
		ExportHandler:     exportHandler,
		PreviewHandler:    previewHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
