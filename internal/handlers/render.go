package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/render"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/repos"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

type RenderHandler struct {
	pipeline render.Pipeline
	sessions repos.LessonSessionRepo
	location string
	log      *logger.Logger
}

func NewRenderHandler(pipeline render.Pipeline, sessions repos.LessonSessionRepo, location string, log *logger.Logger) *RenderHandler {
	return &RenderHandler{
		pipeline: pipeline,
		sessions: sessions,
		location: location,
		log:      log.With("handler", "RenderHandler"),
	}
}

type renderRequest struct {
	SourcePath  string  `json:"source_path" binding:"required"`
	PageNumbers []int   `json:"page_numbers"`
	DeviceScale float64 `json:"device_scale"`
	Stamp       bool    `json:"stamp"`
}

func (rh *RenderHandler) Render(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.DeviceScale <= 0 {
		req.DeviceScale = 1.0
	}

	var stamp *types.StampInfo
	if req.Stamp {
		session, ok := loadSession(c, rh.sessions)
		if !ok {
			return
		}
		stamp = stampFor(session, rh.location)
	}

	result, err := rh.pipeline.Render(c.Request.Context(), req.SourcePath, req.PageNumbers, stamp, req.DeviceScale)
	if err != nil {
		switch {
		case errors.Is(err, render.ErrNoSource):
			RespondError(c, http.StatusNotFound, "source_not_found", err)
		case errors.Is(err, render.ErrSuperseded):
			RespondError(c, http.StatusConflict, "render_superseded", err)
		default:
			RespondError(c, http.StatusInternalServerError, "render_failed", err)
		}
		return
	}
	RespondOK(c, gin.H{"pages": result.Pages, "spaces": result.Spaces})
}

type zoomRequest struct {
	SourcePath  string  `json:"source_path" binding:"required"`
	PageNumbers []int   `json:"page_numbers"`
	DeviceScale float64 `json:"device_scale"`
	Zoom        float64 `json:"zoom" binding:"required"`
}

func (rh *RenderHandler) Zoom(c *gin.Context) {
	var req zoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.DeviceScale <= 0 {
		req.DeviceScale = 1.0
	}
	rh.pipeline.RequestZoom(req.SourcePath, req.PageNumbers, req.DeviceScale, req.Zoom)
	c.Status(http.StatusAccepted)
}

// Image serves a rendered page by handle. Handles die when their
// exercise is evicted or re-rendered, so a miss is expected traffic.
func (rh *RenderHandler) Image(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_image_id", err)
		return
	}
	data, ok := rh.pipeline.Image(id)
	if !ok {
		RespondError(c, http.StatusNotFound, "image_not_found", errors.New("image handle expired"))
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}
