package handlers

import (
	"fmt"
	"log"

	"katalog/internal/cart"
	"katalog/internal/middleware"
	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequestHandler handles HTTP requests for order requests.
type RequestHandler struct {
	service     *services.RequestService
	authService *services.AuthService
	carts       *cart.Store
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service *services.RequestService, authService *services.AuthService, carts *cart.Store) *RequestHandler {
	return &RequestHandler{
		service:     service,
		authService: authService,
		carts:       carts,
	}
}

// RegisterRoutes registers the order request routes with the Fiber app.
func (h *RequestHandler) RegisterRoutes(router fiber.Router) {
	authRequired := middleware.AuthRequired(h.authService)
	staffOnly := middleware.RequireRoles(models.RoleEmployee, models.RoleAdmin)

	requestRoutes := router.Group("/requests")
	requestRoutes.Post("/", authRequired, h.HandleCreateRequest)
	requestRoutes.Get("/mine", authRequired, h.HandleListMine)
	requestRoutes.Get("/", authRequired, staffOnly, h.HandleListAll)
	requestRoutes.Get("/:id", authRequired, h.HandleGetByID)
	requestRoutes.Patch("/:id/status", authRequired, staffOnly, h.HandleUpdateStatus)
	requestRoutes.Delete("/:id", authRequired, staffOnly, h.HandleDeleteRequest)
}

// CreateRequestBody represents the request body for a new order request.
// When Items is empty the current session cart is submitted instead.
type CreateRequestBody struct {
	Items []models.OrderRequestItem `json:"items"`
	Notes string                    `json:"notes"`
}

// HandleCreateRequest submits a new order request for the signed-in user and
// clears the session cart on success.
func (h *RequestHandler) HandleCreateRequest(c *fiber.Ctx) error {
	var body CreateRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	sid := sessionID(c)
	items := body.Items
	if len(items) == 0 {
		for _, line := range h.carts.Get(sid).Items() {
			items = append(items, models.OrderRequestItem{
				ProductID: line.Product.ID,
				Quantity:  line.Quantity,
			})
		}
	}

	request, err := h.service.Create(middleware.Subject(c), items, body.Notes)
	if err != nil {
		log.Printf("Error creating order request: %v", err)
		return respondError(c, "Could not submit order request", err)
	}

	// The cart is ephemeral: discard it once the snapshot is committed.
	h.carts.Remove(sid)

	return c.Status(fiber.StatusCreated).JSON(request)
}

// HandleListMine returns the caller's own requests, most recent first.
func (h *RequestHandler) HandleListMine(c *fiber.Ctx) error {
	requests, err := h.service.ListMine(middleware.Subject(c))
	if err != nil {
		log.Printf("Error listing own requests: %v", err)
		return respondError(c, "Could not retrieve your requests", err)
	}
	return c.JSON(requests)
}

// HandleListAll returns all requests for staff, optionally filtered by the
// status query parameter.
func (h *RequestHandler) HandleListAll(c *fiber.Ctx) error {
	var status models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := models.ParseOrderStatus(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid status filter",
				"error":   err.Error(),
			})
		}
		status = parsed
	}

	requests, err := h.service.ListAll(middleware.Subject(c), status)
	if err != nil {
		log.Printf("Error listing all requests: %v", err)
		return respondError(c, "Could not retrieve requests", err)
	}
	return c.JSON(requests)
}

// HandleGetByID returns a single request as a display view, visible to the
// owner and to staff. Deleted products and owners degrade to placeholders.
func (h *RequestHandler) HandleGetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	request, err := h.service.GetByID(middleware.Subject(c), id)
	if err != nil {
		log.Printf("Error getting order request %s: %v", id, err)
		return respondError(c, fmt.Sprintf("Could not retrieve order request %s", id), err)
	}
	return c.JSON(h.service.Resolve(request))
}

// UpdateStatusBody represents the request body for a status update.
type UpdateStatusBody struct {
	Status string `json:"status"`
}

// HandleUpdateStatus overwrites a request's status. Staff only.
func (h *RequestHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var body UpdateStatusBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if body.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order request status update.",
		})
	}

	if err := h.service.UpdateStatus(middleware.Subject(c), id, models.OrderStatus(body.Status)); err != nil {
		log.Printf("Error updating status for order request %s: %v", id, err)
		return respondError(c, "Could not update order request status", err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order request %s status updated to %s", id, body.Status),
	})
}

// HandleDeleteRequest removes a request permanently. Staff only.
func (h *RequestHandler) HandleDeleteRequest(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(middleware.Subject(c), id); err != nil {
		log.Printf("Error deleting order request %s: %v", id, err)
		return respondError(c, "Could not delete order request", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order request %s deleted", id),
	})
}
