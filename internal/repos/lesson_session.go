package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

type LessonSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *types.LessonSession) (*types.LessonSession, error)
	GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.LessonSession, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.LessonSession, error)
	Delete(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) error
}

type lessonSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonSessionRepo(db *gorm.DB, baseLog *logger.Logger) LessonSessionRepo {
	repoLog := baseLog.With("repo", "LessonSessionRepo")
	return &lessonSessionRepo{db: db, log: repoLog}
}

func (lr *lessonSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.LessonSession) (*types.LessonSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}

	return session, nil
}

func (lr *lessonSessionRepo) GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.LessonSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var session types.LessonSession
	if err := transaction.WithContext(ctx).Where("id = ?", sessionID).First(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

func (lr *lessonSessionRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.LessonSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var sessions []*types.LessonSession
	if err := transaction.WithContext(ctx).Order("created_at DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

func (lr *lessonSessionRepo) Delete(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	return transaction.WithContext(ctx).Where("id = ?", sessionID).Delete(&types.LessonSession{}).Error
}
