package types

import (
	"time"

	"github.com/google/uuid"
)

// LessonSession is one open tutoring lesson. Its identifying fields name
// the batch export archive; the row is deleted (and the session's
// annotation storage wiped) on session exit.
type LessonSession struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CenterStudentID string    `gorm:"not null;column:center_student_id" json:"center_student_id"`
	StudentName     string    `gorm:"not null;column:student_name" json:"student_name"`
	SessionDate     time.Time `gorm:"not null;column:session_date" json:"session_date"`
	TimeSlot        string    `gorm:"column:time_slot" json:"time_slot"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (LessonSession) TableName() string {
	return "lesson_session"
}
