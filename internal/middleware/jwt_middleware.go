package middleware

import (
	"log"
	"strings"

	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SubjectKey is the Locals key under which the authenticated *models.User is
// stored. Nil or absent means anonymous.
const SubjectKey = "subject"

// Subject returns the authenticated user for the request, or nil for
// anonymous callers.
func Subject(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(SubjectKey).(*models.User); ok {
		return user
	}
	return nil
}

// AuthRequired rejects requests without a valid bearer token. On success the
// subject is loaded fresh from storage (so role changes apply immediately)
// and stored in Locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject, errMsg := resolveSubject(c, authService)
		if subject == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": errMsg,
			})
		}
		c.Locals(SubjectKey, subject)
		return c.Next()
	}
}

// OptionalAuth resolves the subject when a bearer token is present but lets
// anonymous requests through. Used on routes like the cart and the public
// catalog, where staff get a wider view but nobody is turned away.
func OptionalAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if subject, _ := resolveSubject(c, authService); subject != nil {
			c.Locals(SubjectKey, subject)
		}
		return c.Next()
	}
}

// RequireRoles denies the request unless the already-resolved subject holds
// one of the roles. Must run after AuthRequired. This is the route-level
// gate; the services enforce the same rules again.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !services.CanAccess(Subject(c), roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Insufficient permissions",
			})
		}
		return c.Next()
	}
}

func resolveSubject(c *fiber.Ctx, authService *services.AuthService) (*models.User, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, "Authorization header is required"
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return nil, "Authorization header format must be 'Bearer <token>'"
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		log.Printf("JWT validation failed: %v", err)
		return nil, "Invalid or expired token"
	}

	subject, err := authService.CurrentSubject(claims)
	if err != nil {
		log.Printf("Subject resolution failed: %v", err)
		return nil, "Invalid or expired token"
	}
	return subject, ""
}
