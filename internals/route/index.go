package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "learnify_backend/internals/features/auth/route"
	certRoute "learnify_backend/internals/features/certificates/route"
	commentRoute "learnify_backend/internals/features/comments/route"
	courseRoute "learnify_backend/internals/features/courses/route"
	enrollRoute "learnify_backend/internals/features/enrollments/route"
	paymentRoute "learnify_backend/internals/features/payments/route"
	reviewRoute "learnify_backend/internals/features/reviews/route"
	wishlistRoute "learnify_backend/internals/features/wishlist/route"
	"learnify_backend/internals/middlewares/auth"
	"learnify_backend/internals/services/email"
)

// SetupRoutes wires every feature group:
//
//	/api/public   read-only catalog, reviews, certificate verification
//	/api/auth     login/logout
//	/api/webhooks + /api/payments/midtrans/notification  provider callbacks
//	/api/u        learner endpoints (JWT required)
//	/api/a        admin CMS (JWT + admin role)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	mailer := email.NewMailer()

	api := app.Group("/api")

	authRoute.AuthRoutes(api)
	paymentRoute.PaymentWebhookRoutes(api, db, mailer)

	public := api.Group("/public")
	courseRoute.PublicCourseRoutes(public, db)
	reviewRoute.ReviewPublicRoutes(public, db)
	commentRoute.CommentPublicRoutes(public, db)
	certRoute.CertificatePublicRoutes(public, db, mailer)

	user := api.Group("/u", auth.AuthMiddleware())
	authRoute.AuthUserRoutes(user)
	enrollRoute.EnrollmentUserRoutes(user, db, mailer)
	certRoute.CertificateUserRoutes(user, db, mailer)
	paymentRoute.PaymentUserRoutes(user, db, mailer)
	reviewRoute.ReviewUserRoutes(user, db)
	commentRoute.CommentUserRoutes(user, db)
	wishlistRoute.WishlistUserRoutes(user, db)

	admin := api.Group("/a", auth.AuthMiddleware(), auth.IsAdmin())
	courseRoute.AdminCourseRoutes(admin, db)
}
