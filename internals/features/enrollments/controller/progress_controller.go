package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnify_backend/internals/features/enrollments/service"
	helper "learnify_backend/internals/helpers"
)

type ProgressController struct {
	Progress *service.ProgressService
}

func NewProgressController(progress *service.ProgressService) *ProgressController {
	return &ProgressController{Progress: progress}
}

// POST /api/u/lessons/:id/complete
func (ctrl *ProgressController) CompleteLesson(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lesson id")
	}

	res, err := ctrl.Progress.CompleteLesson(userID, helper.GetUserNameFromToken(c), helper.GetUserEmailFromToken(c), lessonID)
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}
		log.Println("[ERROR] complete lesson:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record lesson completion")
	}

	payload := fiber.Map{
		"completed":           res.Completed,
		"total":               res.Total,
		"percentage":          res.Percentage,
		"is_course_completed": res.IsCourseCompleted,
	}
	if res.Certificate != nil {
		payload["certificate"] = fiber.Map{
			"certificate_id":     res.Certificate.CertificateID,
			"certificate_number": res.Certificate.CertificateNumber,
		}
	}
	return helper.Success(c, "Lesson completed", payload)
}

// GET /api/u/courses/:id/progress
func (ctrl *ProgressController) CourseProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	enr, res, done, err := ctrl.Progress.CourseProgress(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Not enrolled in this course")
		}
		log.Println("[ERROR] course progress:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch progress")
	}

	lessons := make(map[string]bool, len(done))
	for id, ok := range done {
		lessons[id.String()] = ok
	}

	return helper.Success(c, "OK", fiber.Map{
		"enrollment_id":       enr.EnrollmentID,
		"course_id":           enr.EnrollmentCourseID,
		"completed":           res.Completed,
		"total":               res.Total,
		"percentage":          res.Percentage,
		"is_course_completed": res.IsCourseCompleted,
		"completed_at":        enr.EnrollmentCompletedAt,
		"current_lesson_id":   enr.EnrollmentCurrentLessonID,
		"completed_lessons":   lessons,
	})
}
