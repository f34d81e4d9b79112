package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"learnify_backend/internals/configs"
)

const (
	RoleAdmin   = "admin"
	RoleLearner = "learner"
)

// AuthMiddleware validates the platform JWT (Authorization header or the
// access_token cookie) and stores the identity claims in locals:
// user_id, user_name, user_email, role.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secret := configs.JWTSecret
		if secret == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT secret")
		}

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid token")
		}

		if err := validateExpiry(claims); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - token expired")
		}

		sub, _ := claims["sub"].(string)
		if strings.TrimSpace(sub) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing subject")
		}
		c.Locals("user_id", sub)

		if name, ok := claims["name"].(string); ok {
			c.Locals("user_name", name)
		}
		if email, ok := claims["email"].(string); ok {
			c.Locals("user_email", email)
		}
		role := RoleLearner
		if r, ok := claims["role"].(string); ok && r != "" {
			role = r
		}
		c.Locals("role", role)

		return c.Next()
	}
}

// IsAdmin gates admin routes on the role claim. The claim was assigned when
// the token was minted; no re-derivation here.
func IsAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("role").(string); role != RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		if tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); tok != "" {
			return tok, nil
		}
	}
	if tok := c.Cookies("access_token"); tok != "" {
		return tok, nil
	}
	return "", errors.New("missing authorization token")
}

func validateExpiry(claims jwt.MapClaims) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return errors.New("missing exp claim")
	}
	// small leeway for clock skew
	if time.Now().Add(-30 * time.Second).After(time.Unix(int64(exp), 0)) {
		return errors.New("token expired")
	}
	return nil
}
