package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GetUserIDFromToken reads the provider member id stored by the auth
// middleware. 401 when missing (not logged in).
func GetUserIDFromToken(c *fiber.Ctx) (string, error) {
	v := c.Locals("user_id")
	if v == nil {
		return "", fiber.NewError(fiber.StatusUnauthorized, "User not logged in")
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "User not logged in")
	}
	return strings.TrimSpace(s), nil
}

// GetUserNameFromToken returns the display name claim, "User" when absent.
func GetUserNameFromToken(c *fiber.Ctx) string {
	if s, ok := c.Locals("user_name").(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return "User"
}

// GetUserEmailFromToken returns the email claim, empty when absent.
func GetUserEmailFromToken(c *fiber.Ctx) string {
	if s, ok := c.Locals("user_email").(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
