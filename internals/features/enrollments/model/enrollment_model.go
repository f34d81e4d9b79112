package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment links one provider member to one course. The composite unique
// index is the race-resolution mechanism for double enrolls (double click,
// webhook redelivery): inserts race, the constraint picks the winner.
type Enrollment struct {
	EnrollmentID        uuid.UUID `json:"enrollment_id" gorm:"column:enrollment_id;type:uuid;primaryKey"`
	EnrollmentUserID    string    `json:"enrollment_user_id" gorm:"column:enrollment_user_id;not null;uniqueIndex:uq_enrollments_user_course"`
	EnrollmentUserName  string    `json:"enrollment_user_name" gorm:"column:enrollment_user_name"`
	EnrollmentUserEmail string    `json:"enrollment_user_email" gorm:"column:enrollment_user_email"`
	EnrollmentCourseID  uuid.UUID `json:"enrollment_course_id" gorm:"column:enrollment_course_id;type:uuid;not null;uniqueIndex:uq_enrollments_user_course"`

	EnrollmentProgress        int        `json:"enrollment_progress" gorm:"column:enrollment_progress;not null;default:0"` // 0..100
	EnrollmentCurrentLessonID *uuid.UUID `json:"enrollment_current_lesson_id" gorm:"column:enrollment_current_lesson_id;type:uuid"`

	EnrollmentEnrolledAt     time.Time  `json:"enrollment_enrolled_at" gorm:"column:enrollment_enrolled_at;not null"`
	EnrollmentCompletedAt    *time.Time `json:"enrollment_completed_at" gorm:"column:enrollment_completed_at"`
	EnrollmentLastAccessedAt time.Time  `json:"enrollment_last_accessed_at" gorm:"column:enrollment_last_accessed_at"`

	// set when the membership plan behind a paid enrollment is cancelled;
	// progress rows are kept so a repurchase restores history
	EnrollmentPlanConnectionID *string    `json:"enrollment_plan_connection_id" gorm:"column:enrollment_plan_connection_id;index"`
	EnrollmentAccessRevokedAt  *time.Time `json:"enrollment_access_revoked_at" gorm:"column:enrollment_access_revoked_at"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`

	LessonProgress []LessonProgress `json:"lesson_progress,omitempty" gorm:"foreignKey:LessonProgressEnrollmentID;references:EnrollmentID"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

func (m *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	now := time.Now()
	if m.EnrollmentEnrolledAt.IsZero() {
		m.EnrollmentEnrolledAt = now
	}
	if m.EnrollmentLastAccessedAt.IsZero() {
		m.EnrollmentLastAccessedAt = now
	}
	return nil
}
