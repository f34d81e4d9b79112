package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Lesson struct {
	LessonID          uuid.UUID `json:"lesson_id" gorm:"column:lesson_id;type:uuid;primaryKey"`
	LessonCourseID    uuid.UUID `json:"lesson_course_id" gorm:"column:lesson_course_id;type:uuid;not null;uniqueIndex:uq_lessons_course_order"`
	LessonTitle       string    `json:"lesson_title" gorm:"column:lesson_title;not null"`
	LessonSlug        string    `json:"lesson_slug" gorm:"column:lesson_slug"`
	LessonDescription string    `json:"lesson_description" gorm:"column:lesson_description;type:text"`
	LessonVideoURL    string    `json:"lesson_video_url" gorm:"column:lesson_video_url"`
	LessonDuration    int       `json:"lesson_duration" gorm:"column:lesson_duration;not null;default:0"` // minutes
	LessonOrder       int       `json:"lesson_order" gorm:"column:lesson_order;not null;uniqueIndex:uq_lessons_course_order"`
	LessonIsFree      bool      `json:"lesson_is_free" gorm:"column:lesson_is_free;not null;default:false"`
	CreatedAt         time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Lesson) TableName() string {
	return "lessons"
}

func (m *Lesson) BeforeCreate(tx *gorm.DB) error {
	if m.LessonID == uuid.Nil {
		m.LessonID = uuid.New()
	}
	return nil
}
