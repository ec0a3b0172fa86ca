package repositories

import "katalog/internal/models"

// OrderRequestRepository defines the interface for order request data access.
// Listings are returned most-recent-first; an empty status means no filter.
type OrderRequestRepository interface {
	GetAll(status models.OrderStatus) ([]models.OrderRequest, error)
	GetByOwner(userID string) ([]models.OrderRequest, error)
	GetByID(id string) (*models.OrderRequest, error)
	Create(request *models.OrderRequest) error
	UpdateStatus(id string, status models.OrderStatus) error
	Delete(id string) error
}
