package handlers

import (
	"log"
	"time"

	"katalog/internal/cart"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// cartSessionCookie identifies the browsing session that owns a cart. Carts
// are never shared across sessions or persisted.
const cartSessionCookie = "cart_session"

// CartHandler handles HTTP requests for the session cart. No authentication
// is required: anonymous visitors assemble carts too and only submission
// requires signing in.
type CartHandler struct {
	carts   *cart.Store
	catalog *services.CatalogService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *cart.Store, catalog *services.CatalogService) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// sessionID returns the request's cart session id, minting a cookie on first
// use.
func sessionID(c *fiber.Ctx) string {
	if id := c.Cookies(cartSessionCookie); id != "" {
		return id
	}
	id := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name:     cartSessionCookie,
		Value:    id,
		HTTPOnly: true,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
	})
	return id
}

// cartResponse renders the cart with its recomputed totals.
func cartResponse(cart *cart.Cart) fiber.Map {
	return fiber.Map{
		"items":       cart.Items(),
		"total_items": cart.TotalItems(),
		"total_price": cart.TotalPrice(),
	}
}

// HandleGetCart returns the current line list and totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(cartResponse(h.carts.Get(sessionID(c))))
}

// AddItemRequest represents the request body for adding a cart line.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// HandleAddItem adds a product to the cart, merging quantities when the
// product already has a line. Invalid quantities leave the cart untouched
// rather than erroring, so the cart stays valid.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.GetProductByID(req.ProductID)
	if err != nil {
		log.Printf("Error resolving product %s for cart: %v", req.ProductID, err)
		return respondError(c, "Could not add item to cart", err)
	}

	userCart := h.carts.Get(sessionID(c))
	userCart.AddItem(*product, req.Quantity)
	return c.JSON(cartResponse(userCart))
}

// UpdateQuantityRequest represents the request body for a quantity change.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateQuantity sets a line's quantity. Zero or below removes the
// line; an unknown product id is a no-op.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	userCart := h.carts.Get(sessionID(c))
	userCart.UpdateQuantity(c.Params("productId"), req.Quantity)
	return c.JSON(cartResponse(userCart))
}

// HandleRemoveItem deletes a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userCart := h.carts.Get(sessionID(c))
	userCart.RemoveItem(c.Params("productId"))
	return c.JSON(cartResponse(userCart))
}

// HandleClearCart empties the cart unconditionally.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	userCart := h.carts.Get(sessionID(c))
	userCart.Clear()
	return c.JSON(cartResponse(userCart))
}
