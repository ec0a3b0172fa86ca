package handlers

import (
	"fmt"
	"log"

	"katalog/internal/middleware"
	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for products and categories. Reads are
// public; writes are staff-only.
type CatalogHandler struct {
	service     *services.CatalogService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, authService *services.AuthService) *CatalogHandler {
	return &CatalogHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	staffOnly := middleware.RequireRoles(models.RoleEmployee, models.RoleAdmin)

	productRoutes := router.Group("/products")
	productRoutes.Get("/", middleware.OptionalAuth(h.authService), h.HandleListProducts)
	productRoutes.Get("/:slug", middleware.OptionalAuth(h.authService), h.HandleGetProduct)
	productRoutes.Post("/", middleware.AuthRequired(h.authService), staffOnly, h.HandleCreateProduct)
	productRoutes.Put("/:id", middleware.AuthRequired(h.authService), staffOnly, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", middleware.AuthRequired(h.authService), staffOnly, h.HandleDeleteProduct)

	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleListCategories)
	categoryRoutes.Get("/:slug", h.HandleGetCategory)
	categoryRoutes.Post("/", middleware.AuthRequired(h.authService), staffOnly, h.HandleCreateCategory)
	categoryRoutes.Put("/:id", middleware.AuthRequired(h.authService), staffOnly, h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", middleware.AuthRequired(h.authService), staffOnly, h.HandleDeleteCategory)
}

// HandleListProducts returns a filtered, paginated product listing.
// Customers only see active products; staff see everything.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	query := services.ProductQuery{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
		Page:         c.QueryInt("page", 1),
		Limit:        c.QueryInt("limit", 12),
	}

	page, err := h.service.ListProducts(middleware.Subject(c), query)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(page)
}

// HandleGetProduct returns a single product by slug, with its category name
// resolved (falling back to "Uncategorized" for dangling references).
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	slug := c.Params("slug")
	product, err := h.service.GetProductBySlug(middleware.Subject(c), slug)
	if err != nil {
		log.Printf("Error getting product %s: %v", slug, err)
		return respondError(c, fmt.Sprintf("Could not retrieve product %s", slug), err)
	}
	return c.JSON(fiber.Map{
		"product":  product,
		"category": h.service.CategoryDisplayName(product.CategoryID),
	})
}

// HandleCreateProduct creates a new product.
func (h *CatalogHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(product); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return validationErrorResponse(c, errorMessages)
	}

	if err := h.service.CreateProduct(middleware.Subject(c), &product); err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product.
func (h *CatalogHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = c.Params("id")

	if err := h.service.UpdateProduct(middleware.Subject(c), &product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		return respondError(c, "Could not update product", err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product.
func (h *CatalogHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(middleware.Subject(c), id); err != nil {
		log.Printf("Error deleting product %s: %v", id, err)
		return respondError(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted", id),
	})
}

// HandleListCategories returns all categories ordered by name.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return respondError(c, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

// HandleGetCategory returns a single category by slug.
func (h *CatalogHandler) HandleGetCategory(c *fiber.Ctx) error {
	slug := c.Params("slug")
	category, err := h.service.GetCategoryBySlug(slug)
	if err != nil {
		log.Printf("Error getting category %s: %v", slug, err)
		return respondError(c, fmt.Sprintf("Could not retrieve category %s", slug), err)
	}
	return c.JSON(category)
}

// HandleCreateCategory creates a new category.
func (h *CatalogHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(category); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return validationErrorResponse(c, errorMessages)
	}

	if err := h.service.CreateCategory(middleware.Subject(c), &category); err != nil {
		log.Printf("Error creating category: %v", err)
		return respondError(c, "Could not create category", err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory updates an existing category.
func (h *CatalogHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	category.ID = c.Params("id")

	if err := h.service.UpdateCategory(middleware.Subject(c), &category); err != nil {
		log.Printf("Error updating category %s: %v", category.ID, err)
		return respondError(c, "Could not update category", err)
	}
	return c.JSON(category)
}

// HandleDeleteCategory deletes a category. Products referencing it fall back
// to "Uncategorized" on display.
func (h *CatalogHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteCategory(middleware.Subject(c), id); err != nil {
		log.Printf("Error deleting category %s: %v", id, err)
		return respondError(c, "Could not delete category", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Category %s deleted", id),
	})
}
