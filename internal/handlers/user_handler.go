package handlers

import (
	"fmt"
	"log"

	"katalog/internal/middleware"
	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the admin-only roster routes.
type UserHandler struct {
	service     *services.UserService
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		service:     service,
		authService: authService,
	}
}

// RegisterRoutes registers the user roster routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	authRequired := middleware.AuthRequired(h.authService)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	userRoutes := router.Group("/users")
	userRoutes.Get("/", authRequired, adminOnly, h.HandleListUsers)
	userRoutes.Patch("/:id/role", authRequired, adminOnly, h.HandleUpdateRole)
	userRoutes.Delete("/:id", authRequired, adminOnly, h.HandleDeleteUser)
}

// HandleListUsers returns the roster, optionally filtered by the search query
// parameter.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(middleware.Subject(c), c.Query("search"))
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return respondError(c, "Could not retrieve users", err)
	}
	return c.JSON(users)
}

// UpdateRoleBody represents the request body for a role change.
type UpdateRoleBody struct {
	Role string `json:"role"`
}

// HandleUpdateRole assigns a user a new role. Takes effect on the target's
// next request.
func (h *UserHandler) HandleUpdateRole(c *fiber.Ctx) error {
	id := c.Params("id")
	var body UpdateRoleBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for role update",
			"error":   err.Error(),
		})
	}

	if err := h.service.UpdateRole(middleware.Subject(c), id, models.Role(body.Role)); err != nil {
		log.Printf("Error updating role for user %s: %v", id, err)
		return respondError(c, "Could not update user role", err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("User %s role updated to %s", id, body.Role),
	})
}

// HandleDeleteUser removes a user. Their order requests survive with an
// unresolved owner.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteUser(middleware.Subject(c), id); err != nil {
		log.Printf("Error deleting user %s: %v", id, err)
		return respondError(c, "Could not delete user", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("User %s deleted", id),
	})
}
