package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonProgress holds at most one row per (enrollment, lesson). Re-completing
// a lesson is a no-op, never a second insert.
type LessonProgress struct {
	LessonProgressID           uuid.UUID  `json:"lesson_progress_id" gorm:"column:lesson_progress_id;type:uuid;primaryKey"`
	LessonProgressEnrollmentID uuid.UUID  `json:"lesson_progress_enrollment_id" gorm:"column:lesson_progress_enrollment_id;type:uuid;not null;uniqueIndex:uq_lesson_progress_enrollment_lesson"`
	LessonProgressLessonID     uuid.UUID  `json:"lesson_progress_lesson_id" gorm:"column:lesson_progress_lesson_id;type:uuid;not null;uniqueIndex:uq_lesson_progress_enrollment_lesson"`
	LessonProgressCompleted    bool       `json:"lesson_progress_completed" gorm:"column:lesson_progress_completed;not null;default:false"`
	LessonProgressCompletedAt  *time.Time `json:"lesson_progress_completed_at" gorm:"column:lesson_progress_completed_at"`
	CreatedAt                  time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt                  time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

func (m *LessonProgress) BeforeCreate(tx *gorm.DB) error {
	if m.LessonProgressID == uuid.Nil {
		m.LessonProgressID = uuid.New()
	}
	return nil
}
