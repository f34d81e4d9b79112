package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "learnify_backend/internals/features/courses/model"
	"learnify_backend/internals/features/enrollments/model"
	"learnify_backend/internals/features/enrollments/service"
	helper "learnify_backend/internals/helpers"
)

type EnrollmentController struct {
	DB          *gorm.DB
	Enrollments *service.EnrollmentService
}

func NewEnrollmentController(db *gorm.DB, enrollments *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{DB: db, Enrollments: enrollments}
}

// POST /api/u/courses/:id/enroll
// Conflict means "already have access": the UI shows a friendly message and
// moves on, it is not a failure banner.
func (ctrl *EnrollmentController) Enroll(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	enr, err := ctrl.Enrollments.Enroll(userID, helper.GetUserNameFromToken(c), helper.GetUserEmailFromToken(c), courseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Course not found")
		case errors.Is(err, service.ErrAlreadyEnrolled):
			return fiber.NewError(fiber.StatusConflict, "Already enrolled in this course")
		default:
			log.Println("[ERROR] enroll:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to enroll in course")
		}
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Successfully enrolled in course", fiber.Map{
		"enrollment_id": enr.EnrollmentID,
		"course_id":     enr.EnrollmentCourseID,
		"enrolled_at":   enr.EnrollmentEnrolledAt,
		"progress":      enr.EnrollmentProgress,
	})
}

// GET /api/u/enrollments
func (ctrl *EnrollmentController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var enrollments []model.Enrollment
	err = ctrl.DB.Where("enrollment_user_id = ?", userID).
		Order("enrollment_last_accessed_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch enrollments")
	}

	// attach course cards in one query
	courseIDs := make([]uuid.UUID, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.EnrollmentCourseID)
	}
	courses := map[uuid.UUID]courseModel.Course{}
	if len(courseIDs) > 0 {
		var rows []courseModel.Course
		if err := ctrl.DB.Preload("Category").Where("course_id IN ?", courseIDs).Find(&rows).Error; err == nil {
			for _, r := range rows {
				courses[r.CourseID] = r
			}
		}
	}

	out := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		item := fiber.Map{"enrollment": e}
		if course, ok := courses[e.EnrollmentCourseID]; ok {
			item["course"] = course
		}
		out = append(out, item)
	}

	return helper.Success(c, "OK", fiber.Map{"enrollments": out})
}
