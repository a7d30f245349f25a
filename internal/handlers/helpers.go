package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/repos"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

// loadSession resolves the :id route parameter to a lesson session,
// writing the error response itself on failure.
func loadSession(c *gin.Context, sessions repos.LessonSessionRepo) (*types.LessonSession, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return nil, false
	}
	session, err := sessions.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "session_not_found", err)
		} else {
			RespondError(c, http.StatusInternalServerError, "session_load_failed", err)
		}
		return nil, false
	}
	return session, true
}

// stampFor builds the page stamp for a session. The center location
// comes from configuration; the rest mirrors the session row.
func stampFor(session *types.LessonSession, location string) *types.StampInfo {
	return &types.StampInfo{
		Location:    location,
		StudentID:   session.CenterStudentID,
		StudentName: session.StudentName,
		SessionDate: session.SessionDate,
		SessionTime: session.TimeSlot,
	}
}
