package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnify_backend/internals/features/courses/controller"
)

// AdminCourseRoutes mounts the CMS endpoints under the admin group.
func AdminCourseRoutes(admin fiber.Router, db *gorm.DB) {
	courseCtrl := controller.NewCourseAdminController(db)
	lessonCtrl := controller.NewLessonAdminController(db)

	admin.Post("/courses", courseCtrl.Create)
	admin.Put("/courses/:id", courseCtrl.Update)
	admin.Delete("/courses/:id", courseCtrl.Delete)
	admin.Post("/courses/:id/thumbnail", courseCtrl.UploadThumbnail)

	admin.Post("/courses/:id/lessons", lessonCtrl.Create)
	admin.Put("/lessons/:id", lessonCtrl.Update)
	admin.Delete("/lessons/:id", lessonCtrl.Delete)
}
