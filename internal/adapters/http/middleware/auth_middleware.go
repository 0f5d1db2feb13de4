package middleware

import (
	"strings"

	"loanintake-backend/internal/config"
	"loanintake-backend/internal/core/domain"
	"loanintake-backend/internal/pkg/jwt"
	"loanintake-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the access token and stores the caller's
// identity in fiber locals (userID, username, role)
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Read token from cookie first, then Authorization header
		tokenString := c.Cookies("access_token")

		if tokenString == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if tokenString == "" {
			return response.Unauthorized(c, "Missing access token")
		}

		// 2. Validate token
		claims, err := jwt.ValidateAccessToken(tokenString, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 3. Reject tokens carrying a role this server does not know
		if !claims.Role.Valid() {
			return response.Unauthorized(c, "Invalid access token")
		}

		// 4. Store identity for handlers
		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RequireRole restricts a route to callers holding one of the given roles
func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Missing access token")
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You do not have permission to perform this action")
	}
}

// EmployeeOnly restricts a route to employee accounts
func EmployeeOnly() fiber.Handler {
	return RequireRole(domain.RoleEmployee)
}

// ManagerOnly restricts a route to manager accounts
func ManagerOnly() fiber.Handler {
	return RequireRole(domain.RoleManager)
}
