package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnify_backend/internals/features/payments/model"
	"learnify_backend/internals/features/payments/service"
	helper "learnify_backend/internals/helpers"
)

type PaymentController struct {
	DB       *gorm.DB
	Payments *service.PaymentService
}

func NewPaymentController(db *gorm.DB, payments *service.PaymentService) *PaymentController {
	return &PaymentController{DB: db, Payments: payments}
}

// POST /api/u/courses/:id/checkout
func (ctrl *PaymentController) CreateCheckout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	payment, token, redirectURL, err := ctrl.Payments.CreateCheckout(userID, helper.GetUserNameFromToken(c), helper.GetUserEmailFromToken(c), courseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Course not found")
		case errors.Is(err, service.ErrCourseFree):
			return fiber.NewError(fiber.StatusBadRequest, "Course is free, enroll directly")
		case errors.Is(err, service.ErrAlreadyEnrolled):
			return fiber.NewError(fiber.StatusConflict, "Already enrolled in this course")
		default:
			log.Println("[ERROR] create checkout:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create checkout")
		}
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Checkout created", fiber.Map{
		"payment_id":   payment.PaymentID,
		"order_id":     payment.PaymentOrderID,
		"amount":       payment.PaymentAmount,
		"currency":     payment.PaymentCurrency,
		"snap_token":   token,
		"redirect_url": redirectURL,
	})
}

// GET /api/u/payments
func (ctrl *PaymentController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var payments []model.Payment
	err = ctrl.DB.Where("payment_user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch payments")
	}
	return helper.Success(c, "OK", fiber.Map{"payments": payments})
}
