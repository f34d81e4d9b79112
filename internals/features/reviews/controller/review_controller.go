package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnify_backend/internals/features/reviews/dto"
	"learnify_backend/internals/features/reviews/model"
	"learnify_backend/internals/features/reviews/service"
	helper "learnify_backend/internals/helpers"
)

var validate = validator.New()

var reviewSortColumns = map[string]string{
	"created_at": "created_at",
	"rating":     "review_rating",
}

type ReviewController struct {
	DB      *gorm.DB
	Reviews *service.ReviewService
}

func NewReviewController(db *gorm.DB, reviews *service.ReviewService) *ReviewController {
	return &ReviewController{DB: db, Reviews: reviews}
}

// POST /api/u/courses/:id/reviews
// Create-or-replace: a second submit from the same user updates the first.
func (ctrl *ReviewController) Upsert(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	var body dto.UpsertReviewRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	review, created, err := ctrl.Reviews.Upsert(userID, helper.GetUserNameFromToken(c), "", courseID, body.ReviewRating, body.ReviewComment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Course not found")
		case errors.Is(err, service.ErrNotEnrolled):
			return fiber.NewError(fiber.StatusForbidden, "Only enrolled users can review a course")
		default:
			log.Println("[ERROR] upsert review:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save review")
		}
	}

	if created {
		return helper.SuccessWithCode(c, fiber.StatusCreated, "Review created", review)
	}
	return helper.Success(c, "Review updated", review)
}

// GET /api/public/courses/:id/reviews
func (ctrl *ReviewController) List(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	p := helper.ParsePage(c, "created_at", "desc")

	base := ctrl.DB.Model(&model.Review{}).
		Where("review_course_id = ? AND review_is_published = ?", courseID, true)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	var reviews []model.Review
	err = base.Session(&gorm.Session{}).
		Order(p.SafeOrderClause(reviewSortColumns, "created_at")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&reviews).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	stats, err := ctrl.Reviews.Stats(courseID)
	if err != nil {
		log.Println("[ERROR] review stats:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	return helper.Success(c, "OK", fiber.Map{
		"reviews":    reviews,
		"stats":      stats,
		"pagination": helper.BuildPageMeta(total, p),
	})
}
