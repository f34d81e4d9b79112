package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnify_backend/internals/features/wishlist/controller"
)

// WishlistUserRoutes mounts the authed wishlist endpoints.
func WishlistUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewWishlistController(db)

	user.Get("/wishlist", ctrl.List)
	user.Post("/wishlist/:courseId", ctrl.Add)
	user.Delete("/wishlist/:courseId", ctrl.Remove)
}
