package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "learnify_backend/internals/features/courses/model"
	"learnify_backend/internals/features/enrollments/model"
	helper "learnify_backend/internals/helpers"
	"learnify_backend/internals/services/email"
)

var (
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	ErrCourseNotFound  = errors.New("course not found")
)

type EnrollmentService struct {
	DB     *gorm.DB
	Mailer email.Mailer
}

func NewEnrollmentService(db *gorm.DB, mailer email.Mailer) *EnrollmentService {
	return &EnrollmentService{DB: db, Mailer: mailer}
}

// Enroll handles an explicit enroll request (free courses). The insert is
// optimistic: both halves of a double click hit the unique constraint and
// exactly one comes back ErrAlreadyEnrolled.
func (s *EnrollmentService) Enroll(userID, userName, userEmail string, courseID uuid.UUID) (*model.Enrollment, error) {
	var course courseModel.Course
	err := s.DB.Where("course_id = ? AND course_is_published = ?", courseID, true).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	enr := model.Enrollment{
		EnrollmentUserID:          userID,
		EnrollmentUserName:        userName,
		EnrollmentUserEmail:       userEmail,
		EnrollmentCourseID:        courseID,
		EnrollmentProgress:        0,
		EnrollmentCurrentLessonID: s.firstLessonID(courseID),
	}
	if err := s.DB.Create(&enr).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	s.incrementStudents(courseID)

	// after the insert committed, never before
	if userEmail != "" {
		if err := s.Mailer.SendEnrollmentEmail(userEmail, userName, course.CourseTitle, course.CourseSlug); err != nil {
			log.Printf("[WARN] enrollment email to %s failed: %v", userEmail, err)
		}
	}

	return &enr, nil
}

// EnsureEnrolled lazily creates the enrollment when a user reaches a lesson of
// a free course without enrolling first. Losing the insert race is fine: the
// existing row is authoritative. No counter bump, no email (matches the
// explicit-enroll and webhook flows owning those side effects).
func (s *EnrollmentService) EnsureEnrolled(userID, userName, userEmail string, courseID uuid.UUID, currentLessonID *uuid.UUID) (*model.Enrollment, error) {
	var enr model.Enrollment
	err := s.DB.Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).First(&enr).Error
	if err == nil {
		return &enr, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enr = model.Enrollment{
		EnrollmentUserID:          userID,
		EnrollmentUserName:        userName,
		EnrollmentUserEmail:       userEmail,
		EnrollmentCourseID:        courseID,
		EnrollmentCurrentLessonID: currentLessonID,
	}
	if err := s.DB.Create(&enr).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			var winner model.Enrollment
			if err := s.DB.Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).First(&winner).Error; err != nil {
				return nil, err
			}
			return &winner, nil
		}
		return nil, err
	}
	return &enr, nil
}

// EnrollFromPlan creates the enrollment for a completed purchase (membership
// plan or gateway checkout). created=false means the event was redelivered
// (or the user enrolled meanwhile): the caller must then skip the payment row
// and the counter bump.
func (s *EnrollmentService) EnrollFromPlan(userID, userName, userEmail string, courseID uuid.UUID, planConnectionID *string) (*model.Enrollment, bool, error) {
	enr := model.Enrollment{
		EnrollmentUserID:           userID,
		EnrollmentUserName:         userName,
		EnrollmentUserEmail:        userEmail,
		EnrollmentCourseID:         courseID,
		EnrollmentCurrentLessonID:  s.firstLessonID(courseID),
		EnrollmentPlanConnectionID: planConnectionID,
	}
	if err := s.DB.Create(&enr).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			var winner model.Enrollment
			if err := s.DB.Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).First(&winner).Error; err != nil {
				return nil, false, err
			}
			return &winner, false, nil
		}
		return nil, false, err
	}
	s.incrementStudents(courseID)
	return &enr, true, nil
}

// MarkPlanCancelled timestamps the access loss without touching progress
// history, so a cancelled-then-repurchased learner keeps completed lessons.
func (s *EnrollmentService) MarkPlanCancelled(userID, planConnectionID string) error {
	var enr model.Enrollment
	err := s.DB.Where("enrollment_user_id = ? AND enrollment_plan_connection_id = ?", userID, planConnectionID).First(&enr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] plan cancel for unknown enrollment user=%s conn=%s", userID, planConnectionID)
			return nil
		}
		return err
	}
	now := time.Now()
	return s.DB.Model(&model.Enrollment{}).
		Where("enrollment_id = ?", enr.EnrollmentID).
		Updates(map[string]interface{}{
			"enrollment_access_revoked_at": now,
			"enrollment_last_accessed_at":  now,
		}).Error
}

func (s *EnrollmentService) firstLessonID(courseID uuid.UUID) *uuid.UUID {
	var first courseModel.Lesson
	err := s.DB.Where("lesson_course_id = ?", courseID).Order("lesson_order ASC").First(&first).Error
	if err != nil {
		return nil
	}
	return &first.LessonID
}

func (s *EnrollmentService) incrementStudents(courseID uuid.UUID) {
	err := s.DB.Model(&courseModel.Course{}).
		Where("course_id = ?", courseID).
		UpdateColumn("course_students_count", gorm.Expr("course_students_count + 1")).Error
	if err != nil {
		log.Printf("[ERROR] students count bump failed for course %s: %v", courseID, err)
	}
}
