package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/annotations"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

type AnnotationHandler struct {
	store *annotations.Manager
	log   *logger.Logger
}

func NewAnnotationHandler(store *annotations.Manager, log *logger.Logger) *AnnotationHandler {
	return &AnnotationHandler{store: store, log: log.With("handler", "AnnotationHandler")}
}

// GetAll returns every annotated page of every exercise in the session.
func (ah *AnnotationHandler) GetAll(c *gin.Context) {
	store, ok := ah.forSession(c)
	if !ok {
		return
	}
	RespondOK(c, gin.H{"annotations": store.GetAllAnnotations()})
}

// GetExercise returns one exercise's annotations; with a page query
// parameter, just that page's strokes.
func (ah *AnnotationHandler) GetExercise(c *gin.Context) {
	store, ok := ah.forSession(c)
	if !ok {
		return
	}
	exercise := c.Query("exercise")
	if exercise == "" {
		RespondError(c, http.StatusBadRequest, "missing_exercise", errors.New("exercise query parameter is required"))
		return
	}
	pages := store.GetAnnotations(exercise)
	if pageParam := c.Query("page"); pageParam != "" {
		page, err := strconv.Atoi(pageParam)
		if err != nil || page < 0 {
			RespondError(c, http.StatusBadRequest, "invalid_page", errors.New("page must be a non-negative integer"))
			return
		}
		RespondOK(c, gin.H{"strokes": pages[page]})
		return
	}
	RespondOK(c, gin.H{"pages": pages})
}

type setPageRequest struct {
	Exercise string         `json:"exercise" binding:"required"`
	Page     *int           `json:"page" binding:"required"`
	Strokes  []types.Stroke `json:"strokes"`
}

// SetPage replaces one page's strokes, pushing the previous state onto
// that page's undo stack.
func (ah *AnnotationHandler) SetPage(c *gin.Context) {
	store, ok := ah.forSession(c)
	if !ok {
		return
	}
	var req setPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if *req.Page < 0 {
		RespondError(c, http.StatusBadRequest, "invalid_page", errors.New("page must be a non-negative integer"))
		return
	}
	if err := store.SetPageStrokes(c.Request.Context(), req.Exercise, *req.Page, req.Strokes); err != nil {
		RespondError(c, http.StatusInternalServerError, "annotation_save_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type historyRequest struct {
	Exercise string `json:"exercise" binding:"required"`
	Page     *int   `json:"page"`
}

// Undo reverts the page's last committed change and returns the page's
// strokes afterwards. An empty undo stack leaves the page as is.
func (ah *AnnotationHandler) Undo(c *gin.Context) {
	store, ok := ah.forSession(c)
	if !ok {
		return
	}
	var req historyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Page == nil || *req.Page < 0 {
		RespondError(c, http.StatusBadRequest, "invalid_page", errors.New("page must be a non-negative integer"))
		return
	}
	strokes, err := store.UndoLastStroke(c.Request.Context(), req.Exercise, *req.Page)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "undo_failed", err)
		return
	}
	RespondOK(c, gin.H{"page": *req.Page, "strokes": strokes})
}

// Redo re-applies the most recently undone change. An explicit page is
// honored as given; otherwise the page the last undo touched is tried
// first, then the exercise's other known pages in ascending order.
func (ah *AnnotationHandler) Redo(c *gin.Context) {
	store, ok := ah.forSession(c)
	if !ok {
		return
	}
	var req historyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Page != nil {
		if *req.Page < 0 {
			RespondOK(c, gin.H{"redone": false})
			return
		}
		strokes, redone, err := store.RedoLastStroke(c.Request.Context(), req.Exercise, *req.Page)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "redo_failed", err)
			return
		}
		if !redone {
			RespondOK(c, gin.H{"redone": false})
			return
		}
		RespondOK(c, gin.H{"redone": true, "page": *req.Page, "strokes": strokes})
		return
	}

	candidates := store.PageIndexes(req.Exercise)
	sort.Ints(candidates)
	if last := store.LastUndonePage(req.Exercise); last >= 0 {
		candidates = append([]int{last}, candidates...)
	}
	for _, page := range candidates {
		strokes, redone, err := store.RedoLastStroke(c.Request.Context(), req.Exercise, page)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "redo_failed", err)
			return
		}
		if redone {
			RespondOK(c, gin.H{"redone": true, "page": page, "strokes": strokes})
			return
		}
	}
	RespondOK(c, gin.H{"redone": false})
}

// Clear wipes one exercise's annotations and history.
func (ah *AnnotationHandler) Clear(c *gin.Context) {
	store, ok := ah.forSession(c)
	if !ok {
		return
	}
	exercise := c.Query("exercise")
	if exercise == "" {
		RespondError(c, http.StatusBadRequest, "missing_exercise", errors.New("exercise query parameter is required"))
		return
	}
	if err := store.ClearAnnotations(c.Request.Context(), exercise); err != nil {
		RespondError(c, http.StatusInternalServerError, "annotation_clear_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ah *AnnotationHandler) forSession(c *gin.Context) (*annotations.Store, bool) {
	sessionID := c.Param("id")
	if sessionID == "" {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", errors.New("session id is required"))
		return nil, false
	}
	store, err := ah.store.ForSession(c.Request.Context(), sessionID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "annotation_store_failed", err)
		return nil, false
	}
	return store, true
}
