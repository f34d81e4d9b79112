package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnify_backend/internals/features/courses/controller"
)

// PublicCourseRoutes mounts the read-only catalog under the public group.
func PublicCourseRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCourseController(db)

	public.Get("/courses", ctrl.List)
	public.Get("/courses/:idOrSlug", ctrl.Get)
	public.Get("/categories", ctrl.ListCategories)
}
