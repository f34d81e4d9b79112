package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnify_backend/internals/features/comments/controller"
	"learnify_backend/internals/features/comments/service"
)

// CommentUserRoutes mounts the authed posting endpoint.
func CommentUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCommentController(service.NewCommentService(db))

	user.Post("/lessons/:id/comments", ctrl.Create)
}

// CommentPublicRoutes mounts the read-only thread listing.
func CommentPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCommentController(service.NewCommentService(db))

	public.Get("/lessons/:id/comments", ctrl.List)
}
