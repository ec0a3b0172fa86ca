package repositories

import (
	"katalog/internal/models"
)

// ProductFilter narrows and paginates a product listing. A zero Limit means
// no pagination; ActiveOnly hides inactive products from customer views.
type ProductFilter struct {
	CategoryID string
	Search     string
	ActiveOnly bool
	Page       int
	Limit      int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
