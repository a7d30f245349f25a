package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/annotations"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/repos"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

type SessionHandler struct {
	sessions repos.LessonSessionRepo
	store    *annotations.Manager
	log      *logger.Logger
}

func NewSessionHandler(sessions repos.LessonSessionRepo, store *annotations.Manager, log *logger.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, store: store, log: log.With("handler", "SessionHandler")}
}

type createSessionRequest struct {
	CenterStudentID string    `json:"center_student_id" binding:"required"`
	StudentName     string    `json:"student_name" binding:"required"`
	SessionDate     time.Time `json:"session_date"`
	TimeSlot        string    `json:"time_slot"`
}

func (sh *SessionHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	session := &types.LessonSession{
		CenterStudentID: req.CenterStudentID,
		StudentName:     req.StudentName,
		SessionDate:     req.SessionDate,
		TimeSlot:        req.TimeSlot,
	}
	session, err := sh.sessions.Create(c.Request.Context(), nil, session)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "session_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

func (sh *SessionHandler) List(c *gin.Context) {
	sessions, err := sh.sessions.List(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "session_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"sessions": sessions})
}

func (sh *SessionHandler) Get(c *gin.Context) {
	session, ok := loadSession(c, sh.sessions)
	if !ok {
		return
	}
	RespondOK(c, gin.H{"session": session})
}

// Exit ends a lesson: the session row is removed and the session's
// persisted annotations are wiped, so a later session for the same
// student starts clean.
func (sh *SessionHandler) Exit(c *gin.Context) {
	session, ok := loadSession(c, sh.sessions)
	if !ok {
		return
	}
	if err := sh.store.Drop(c.Request.Context(), session.ID.String()); err != nil {
		sh.log.Warn("failed to wipe session annotations", "session_id", session.ID, "error", err)
	}
	if err := sh.sessions.Delete(c.Request.Context(), nil, session.ID); err != nil {
		RespondError(c, http.StatusInternalServerError, "session_exit_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
