package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certService "learnify_backend/internals/features/certificates/service"
	"learnify_backend/internals/features/enrollments/controller"
	"learnify_backend/internals/features/enrollments/service"
	"learnify_backend/internals/services/email"
)

// EnrollmentUserRoutes mounts the learner endpoints under the authed group.
func EnrollmentUserRoutes(user fiber.Router, db *gorm.DB, mailer email.Mailer) {
	enrollments := service.NewEnrollmentService(db, mailer)
	certificates := certService.NewCertificateService(db, mailer)
	progress := service.NewProgressService(db, enrollments, certificates)

	enrollCtrl := controller.NewEnrollmentController(db, enrollments)
	progressCtrl := controller.NewProgressController(progress)

	user.Get("/enrollments", enrollCtrl.List)
	user.Post("/courses/:id/enroll", enrollCtrl.Enroll)
	user.Get("/courses/:id/progress", progressCtrl.CourseProgress)
	user.Post("/lessons/:id/complete", progressCtrl.CompleteLesson)
}
