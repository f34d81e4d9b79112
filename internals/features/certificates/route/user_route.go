package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnify_backend/internals/features/certificates/controller"
	"learnify_backend/internals/features/certificates/service"
	"learnify_backend/internals/services/email"
)

// CertificateUserRoutes mounts the owner-facing certificate endpoints.
func CertificateUserRoutes(user fiber.Router, db *gorm.DB, mailer email.Mailer) {
	ctrl := controller.NewCertificateController(db, service.NewCertificateService(db, mailer))

	user.Get("/certificates", ctrl.List)
	user.Get("/certificates/:id", ctrl.Get)
}

// CertificatePublicRoutes mounts the verification endpoint (no auth).
func CertificatePublicRoutes(public fiber.Router, db *gorm.DB, mailer email.Mailer) {
	ctrl := controller.NewCertificateController(db, service.NewCertificateService(db, mailer))

	public.Get("/certificates/verify", ctrl.Verify)
}
