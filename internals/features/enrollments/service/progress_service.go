package service

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	certModel "learnify_backend/internals/features/certificates/model"
	certService "learnify_backend/internals/features/certificates/service"
	courseModel "learnify_backend/internals/features/courses/model"
	"learnify_backend/internals/features/enrollments/model"
	helper "learnify_backend/internals/helpers"
)

var ErrLessonNotFound = errors.New("lesson not found")

type CompleteLessonResult struct {
	Completed         int                    `json:"completed"`
	Total             int                    `json:"total"`
	Percentage        int                    `json:"percentage"`
	IsCourseCompleted bool                   `json:"is_course_completed"`
	Certificate       *certModel.Certificate `json:"certificate,omitempty"`
}

type ProgressService struct {
	DB           *gorm.DB
	Enrollments  *EnrollmentService
	Certificates *certService.CertificateService
}

func NewProgressService(db *gorm.DB, enrollments *EnrollmentService, certificates *certService.CertificateService) *ProgressService {
	return &ProgressService{DB: db, Enrollments: enrollments, Certificates: certificates}
}

// CompleteLesson records a completion, recomputes the course percentage and
// issues the certificate when the course just finished. Every step is
// idempotent, so callers may retry the whole operation.
func (s *ProgressService) CompleteLesson(userID, userName, userEmail string, lessonID uuid.UUID) (*CompleteLessonResult, error) {
	var lesson courseModel.Lesson
	if err := s.DB.Where("lesson_id = ?", lessonID).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	courseID := lesson.LessonCourseID

	var total int64
	if err := s.DB.Model(&courseModel.Lesson{}).Where("lesson_course_id = ?", courseID).Count(&total).Error; err != nil {
		return nil, err
	}

	enr, err := s.Enrollments.EnsureEnrolled(userID, userName, userEmail, courseID, &lessonID)
	if err != nil {
		return nil, err
	}

	if err := s.upsertLessonProgress(enr.EnrollmentID, lessonID); err != nil {
		return nil, err
	}

	var completed int64
	err = s.DB.Model(&model.LessonProgress{}).
		Where("lesson_progress_enrollment_id = ? AND lesson_progress_completed = ?", enr.EnrollmentID, true).
		Count(&completed).Error
	if err != nil {
		return nil, err
	}

	// >= not ==: deleting a lesson from an already-finished course leaves
	// more progress rows than lessons, and that still counts as complete
	isCompleted := total > 0 && completed >= total
	pct := ProgressPercentage(int(completed), int(total))
	now := time.Now()

	err = s.DB.Model(&model.Enrollment{}).
		Where("enrollment_id = ?", enr.EnrollmentID).
		Updates(map[string]interface{}{
			"enrollment_progress":          pct,
			"enrollment_last_accessed_at":  now,
			"enrollment_current_lesson_id": lessonID,
		}).Error
	if err != nil {
		return nil, err
	}

	if isCompleted {
		// the IS NULL guard keeps the completion time from ever being
		// overwritten by a later no-op call
		err = s.DB.Model(&model.Enrollment{}).
			Where("enrollment_id = ? AND enrollment_completed_at IS NULL", enr.EnrollmentID).
			Update("enrollment_completed_at", now).Error
		if err != nil {
			return nil, err
		}
	}

	result := &CompleteLessonResult{
		Completed:         int(completed),
		Total:             int(total),
		Percentage:        pct,
		IsCourseCompleted: isCompleted,
	}

	if isCompleted {
		cert, err := s.Certificates.IssueIfEligible(userID, userName, userEmail, courseID)
		if err != nil {
			return nil, err
		}
		result.Certificate = cert
	}

	return result, nil
}

// CourseProgress returns completed/total plus the per-lesson completion map.
func (s *ProgressService) CourseProgress(userID string, courseID uuid.UUID) (*model.Enrollment, *CompleteLessonResult, map[uuid.UUID]bool, error) {
	var enr model.Enrollment
	err := s.DB.Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).First(&enr).Error
	if err != nil {
		return nil, nil, nil, err
	}

	var total int64
	if err := s.DB.Model(&courseModel.Lesson{}).Where("lesson_course_id = ?", courseID).Count(&total).Error; err != nil {
		return nil, nil, nil, err
	}

	var rows []model.LessonProgress
	err = s.DB.Where("lesson_progress_enrollment_id = ? AND lesson_progress_completed = ?", enr.EnrollmentID, true).Find(&rows).Error
	if err != nil {
		return nil, nil, nil, err
	}

	done := make(map[uuid.UUID]bool, len(rows))
	for _, r := range rows {
		done[r.LessonProgressLessonID] = true
	}

	res := &CompleteLessonResult{
		Completed:         len(rows),
		Total:             int(total),
		Percentage:        ProgressPercentage(len(rows), int(total)),
		IsCourseCompleted: total > 0 && int64(len(rows)) >= total,
	}
	return &enr, res, done, nil
}

func (s *ProgressService) upsertLessonProgress(enrollmentID, lessonID uuid.UUID) error {
	var lp model.LessonProgress
	err := s.DB.Where("lesson_progress_enrollment_id = ? AND lesson_progress_lesson_id = ?", enrollmentID, lessonID).First(&lp).Error

	now := time.Now()
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		lp = model.LessonProgress{
			LessonProgressEnrollmentID: enrollmentID,
			LessonProgressLessonID:     lessonID,
			LessonProgressCompleted:    true,
			LessonProgressCompletedAt:  &now,
		}
		if createErr := s.DB.Create(&lp).Error; createErr != nil {
			if helper.IsDuplicateKey(createErr) {
				// concurrent completion of the same lesson; the winner's row
				// is exactly what we wanted to write
				return nil
			}
			return createErr
		}
		return nil
	case err != nil:
		return err
	case !lp.LessonProgressCompleted:
		return s.DB.Model(&model.LessonProgress{}).
			Where("lesson_progress_id = ?", lp.LessonProgressID).
			Updates(map[string]interface{}{
				"lesson_progress_completed":    true,
				"lesson_progress_completed_at": now,
			}).Error
	default:
		// already completed: no count or timestamp may change
		return nil
	}
}

// ProgressPercentage rounds half-up, clamped so 100 is reported exactly when
// every lesson is done. Plain rounding would report 100 at e.g. 199/200
// (99.5%); the clamp caps that at 99.
func ProgressPercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	pct := int(math.Round(float64(completed) / float64(total) * 100))
	if pct >= 100 {
		pct = 99
	}
	return pct
}
