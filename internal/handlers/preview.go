package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/annotations"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/coords"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/render"
)

type PreviewHandler struct {
	previewer *render.Previewer
	pipeline  render.Pipeline
	store     *annotations.Manager
	log       *logger.Logger
}

func NewPreviewHandler(previewer *render.Previewer, pipeline render.Pipeline, store *annotations.Manager, log *logger.Logger) *PreviewHandler {
	return &PreviewHandler{
		previewer: previewer,
		pipeline:  pipeline,
		store:     store,
		log:       log.With("handler", "PreviewHandler"),
	}
}

type previewRequest struct {
	Exercise     string           `json:"exercise" binding:"required"`
	Page         *int             `json:"page" binding:"required"`
	Handle       string           `json:"handle" binding:"required"`
	Space        coords.PageSpace `json:"space"`
	Label        string           `json:"label"`
	ThumbnailMax int              `json:"thumbnail_max"`
}

// Preview flattens a page's ink onto its rendered image and returns the
// composite PNG. With thumbnail_max set, the composite is downscaled so
// its longest side fits that many pixels.
func (ph *PreviewHandler) Preview(c *gin.Context) {
	sessionID := c.Param("id")
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	handle, err := uuid.Parse(req.Handle)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_image_id", err)
		return
	}
	pageImage, ok := ph.pipeline.Image(handle)
	if !ok {
		RespondError(c, http.StatusNotFound, "image_not_found", errors.New("image handle expired"))
		return
	}
	store, err := ph.store.ForSession(c.Request.Context(), sessionID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "annotation_store_failed", err)
		return
	}
	strokes := store.GetAnnotations(req.Exercise)[*req.Page]

	data, err := ph.previewer.Compose(pageImage, strokes, req.Space, req.Label)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "preview_failed", err)
		return
	}
	if req.ThumbnailMax > 0 {
		data, err = ph.previewer.Thumbnail(data, req.ThumbnailMax)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "preview_failed", err)
			return
		}
	}
	c.Data(http.StatusOK, "image/png", data)
}
