package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tunestory/api/pkg/response"
)

// Identity headers exchanged with the gateway
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
)

// GatewayAuthMiddleware trusts the X-User-* headers set by the gateway's
// ForwardAuth call to /auth/verify.
func GatewayAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get(HeaderUserID)
		if userID == "" {
			return response.Unauthorized(c, "Missing user identity headers")
		}

		c.Locals(localUserID, userID)
		c.Locals(localEmail, c.Get(HeaderUserEmail))
		return c.Next()
	}
}
