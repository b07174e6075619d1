package middleware

import (
	"errors"
	"strings"

	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/config"
	"memberhub/internal/core/domain"
	"memberhub/internal/pkg/jwt"
	"memberhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the bearer token and loads the member into
// the request context. Disabled accounts are rejected even with a
// valid token.
func AuthMiddleware(cfg *config.Config, memberRepo *repositories.MemberRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if token == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateToken(token, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		member, err := memberRepo.GetByID(c.Context(), claims.MemberID)
		if err != nil {
			return response.Unauthorized(c, "Invalid access token")
		}
		if member.Status != string(domain.MemberActive) || !member.IsActive {
			return response.Forbidden(c, "Account is disabled")
		}

		c.Locals("memberID", member.ID)
		c.Locals("memberCode", member.MemberID)
		c.Locals("membershipType", member.MembershipType)

		return c.Next()
	}
}

// ElevatedOnly allows only members whose tier grants admin console
// access
func ElevatedOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tier, ok := c.Locals("membershipType").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		if !domain.MembershipType(tier).IsElevated() {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}

// MemberID returns the authenticated member's id from the request
// context
func MemberID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("memberID").(uint)
	return id, ok
}
