package route

import (
	"github.com/gofiber/fiber/v2"

	"learnify_backend/internals/features/auth/controller"
	"learnify_backend/internals/features/auth/service"
	middlewares "learnify_backend/internals/middlewares"
)

// AuthRoutes mounts the login/logout endpoints with the tighter sign-in
// rate limit.
func AuthRoutes(api fiber.Router) {
	ctrl := controller.NewAuthController(service.NewAuthService())

	grp := api.Group("/auth", middlewares.AuthRateLimiter())
	grp.Post("/google", ctrl.GoogleLogin)
	grp.Post("/logout", ctrl.Logout)
}

// AuthUserRoutes mounts the identity echo under the authed group.
func AuthUserRoutes(user fiber.Router) {
	ctrl := controller.NewAuthController(service.NewAuthService())

	user.Get("/me", ctrl.Me)
}
