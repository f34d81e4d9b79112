package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnify_backend/internals/features/reviews/controller"
	"learnify_backend/internals/features/reviews/service"
)

// ReviewUserRoutes mounts the authed review endpoints.
func ReviewUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReviewController(db, service.NewReviewService(db))

	user.Post("/courses/:id/reviews", ctrl.Upsert)
}

// ReviewPublicRoutes mounts the read-only review listing.
func ReviewPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReviewController(db, service.NewReviewService(db))

	public.Get("/courses/:id/reviews", ctrl.List)
}
