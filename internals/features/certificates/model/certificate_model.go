package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificate is an append-only artifact: at most one per (user, course),
// immutable once created. Course/instructor names are snapshots taken at
// issuance so later course edits do not rewrite issued certificates.
type Certificate struct {
	CertificateID             uuid.UUID `json:"certificate_id" gorm:"column:certificate_id;type:uuid;primaryKey"`
	CertificateUserID         string    `json:"certificate_user_id" gorm:"column:certificate_user_id;not null;uniqueIndex:uq_certificates_user_course"`
	CertificateCourseID       uuid.UUID `json:"certificate_course_id" gorm:"column:certificate_course_id;type:uuid;not null;uniqueIndex:uq_certificates_user_course"`
	CertificateUserName       string    `json:"certificate_user_name" gorm:"column:certificate_user_name"`
	CertificateCourseName     string    `json:"certificate_course_name" gorm:"column:certificate_course_name"`
	CertificateInstructorName string    `json:"certificate_instructor_name" gorm:"column:certificate_instructor_name"`

	CertificateNumber           string `json:"certificate_number" gorm:"column:certificate_number;uniqueIndex;not null"`
	CertificateVerificationCode string `json:"certificate_verification_code" gorm:"column:certificate_verification_code;uniqueIndex;not null"`

	CertificateIssuedAt time.Time `json:"certificate_issued_at" gorm:"column:certificate_issued_at;not null"`
	CreatedAt           time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Certificate) TableName() string {
	return "certificates"
}

func (m *Certificate) BeforeCreate(tx *gorm.DB) error {
	if m.CertificateID == uuid.Nil {
		m.CertificateID = uuid.New()
	}
	if m.CertificateIssuedAt.IsZero() {
		m.CertificateIssuedAt = time.Now()
	}
	return nil
}
