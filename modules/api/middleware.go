package api

import (
	"strings"

	userdomain "github.com/example/task-manager/domain/user"
	"github.com/example/task-manager/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// UserContextKey is the key used to store user claims in the Fiber context.
const UserContextKey = "user"

// AuthMiddleware validates the Bearer token on every request and stores the
// resolved claims in the request context for the task and AI handlers.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, missing := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: missing,
			})
		}

		claims, err := authAdapter.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}

// bearerToken extracts the token from the Authorization header. When no
// token is present the second return value says what was missing.
func bearerToken(c *fiber.Ctx) (string, string) {
	header := c.Get("Authorization")
	if header == "" {
		return "", "Authorization header is required"
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", "Invalid authorization header format. Use: Bearer <token>"
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", "Token is required"
	}
	return token, ""
}

// currentClaims returns the authenticated user's claims stored by
// AuthMiddleware.
func currentClaims(c *fiber.Ctx) (*userdomain.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*userdomain.Claims)
	return claims, ok
}

// unauthenticated is the response for protected handlers reached without
// claims in the context.
func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "User not authenticated",
	})
}
