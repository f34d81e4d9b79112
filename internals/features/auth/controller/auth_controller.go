package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"learnify_backend/internals/features/auth/service"
	helper "learnify_backend/internals/helpers"
)

type AuthController struct {
	Auth *service.AuthService
}

func NewAuthController(auth *service.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type googleLoginRequest struct {
	IDToken string `json:"id_token"`
}

// POST /api/auth/google
// Exchanges a Google id token for a platform JWT. The JWT is returned in the
// body and also set as an httpOnly cookie for browser clients.
func (ctrl *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var body googleLoginRequest
	if err := c.BodyParser(&body); err != nil || body.IDToken == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing id_token")
	}

	profile, err := ctrl.Auth.VerifyGoogleToken(body.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGoogleToken) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid Google token")
		}
		log.Println("[ERROR] google login:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Login failed")
	}

	role := ctrl.Auth.RoleFor(profile.Email)
	token, exp, err := ctrl.Auth.MintToken(profile.Sub, profile.Name, profile.Email, role)
	if err != nil {
		log.Println("[ERROR] mint token:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Login failed")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  exp,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/",
	})

	return helper.Success(c, "Login successful", fiber.Map{
		"access_token": token,
		"expires_at":   exp.Format(time.RFC3339),
		"user": fiber.Map{
			"id":     profile.Sub,
			"name":   profile.Name,
			"email":  profile.Email,
			"avatar": profile.Picture,
			"role":   role,
		},
	})
}

// POST /api/auth/logout
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
	return helper.Success(c, "Logged out", nil)
}

// GET /api/u/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", fiber.Map{
		"id":    userID,
		"name":  helper.GetUserNameFromToken(c),
		"email": helper.GetUserEmailFromToken(c),
		"role":  c.Locals("role"),
	})
}
