package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	enrollService "learnify_backend/internals/features/enrollments/service"
	"learnify_backend/internals/features/payments/controller"
	"learnify_backend/internals/features/payments/service"
	"learnify_backend/internals/services/email"
)

// PaymentWebhookRoutes mounts the provider-facing endpoints. These stay
// outside the auth middleware: providers sign requests, they do not log in.
func PaymentWebhookRoutes(api fiber.Router, db *gorm.DB, mailer email.Mailer) {
	enrollments := enrollService.NewEnrollmentService(db, mailer)
	webhooks := service.NewWebhookService(db, enrollments, mailer)
	payments := service.NewPaymentService(db, enrollments, mailer)
	ctrl := controller.NewWebhookController(webhooks, payments)

	api.Get("/webhooks/membership", ctrl.Ping)
	api.Post("/webhooks/membership", ctrl.HandleMembership)
	api.Post("/payments/midtrans/notification", ctrl.HandleMidtransNotification)
}

// PaymentUserRoutes mounts the learner checkout endpoints.
func PaymentUserRoutes(user fiber.Router, db *gorm.DB, mailer email.Mailer) {
	enrollments := enrollService.NewEnrollmentService(db, mailer)
	payments := service.NewPaymentService(db, enrollments, mailer)
	ctrl := controller.NewPaymentController(db, payments)

	user.Post("/courses/:id/checkout", ctrl.CreateCheckout)
	user.Get("/payments", ctrl.List)
}
