package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/annotations"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/export"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/repos"
)

type ExportHandler struct {
	exporter *export.Exporter
	store    *annotations.Manager
	sessions repos.LessonSessionRepo
	location string
	log      *logger.Logger
}

func NewExportHandler(exporter *export.Exporter, store *annotations.Manager, sessions repos.LessonSessionRepo, location string, log *logger.Logger) *ExportHandler {
	return &ExportHandler{
		exporter: exporter,
		store:    store,
		sessions: sessions,
		location: location,
		log:      log.With("handler", "ExportHandler"),
	}
}

type exportItem struct {
	Exercise    string `json:"exercise" binding:"required"`
	SourcePath  string `json:"source_path" binding:"required"`
	DisplayName string `json:"display_name"`
	PageNumbers []int  `json:"page_numbers"`
}

// ExportExercise downloads one exercise as an annotated PDF.
func (eh *ExportHandler) ExportExercise(c *gin.Context) {
	session, ok := loadSession(c, eh.sessions)
	if !ok {
		return
	}
	var req exportItem
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	store, err := eh.store.ForSession(c.Request.Context(), session.ID.String())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "annotation_store_failed", err)
		return
	}

	ex := export.Exercise{
		SourcePath:  req.SourcePath,
		DisplayName: req.DisplayName,
		PageNumbers: req.PageNumbers,
		Annotations: store.GetAnnotations(req.Exercise),
	}
	filename, data, err := eh.exporter.ExportExercise(ex, stampFor(session, eh.location))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "export_failed", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

type exportAllRequest struct {
	Exercises []exportItem `json:"exercises" binding:"required"`
}

// ExportAll downloads every annotated exercise of the session as a zip
// archive named after the student and session.
func (eh *ExportHandler) ExportAll(c *gin.Context) {
	session, ok := loadSession(c, eh.sessions)
	if !ok {
		return
	}
	var req exportAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	store, err := eh.store.ForSession(c.Request.Context(), session.ID.String())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "annotation_store_failed", err)
		return
	}

	exercises := make([]export.Exercise, 0, len(req.Exercises))
	for _, item := range req.Exercises {
		exercises = append(exercises, export.Exercise{
			SourcePath:  item.SourcePath,
			DisplayName: item.DisplayName,
			PageNumbers: item.PageNumbers,
			Annotations: store.GetAnnotations(item.Exercise),
		})
	}
	filename, data, err := eh.exporter.ExportAll(exercises, stampFor(session, eh.location))
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "export_empty", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/zip", data)
}
