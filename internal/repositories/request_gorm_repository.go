package repositories

import (
	"errors"
	"fmt"
	"time"

	"katalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRequestRepository is a GORM implementation of OrderRequestRepository.
type GORMOrderRequestRepository struct {
	db *gorm.DB
}

// NewGORMOrderRequestRepository creates a new instance of GORMOrderRequestRepository.
func NewGORMOrderRequestRepository(db *gorm.DB) *GORMOrderRequestRepository {
	return &GORMOrderRequestRepository{
		db: db,
	}
}

// GetAll retrieves all order requests, most recent first, optionally filtered
// to a single status.
func (r *GORMOrderRequestRepository) GetAll(status models.OrderStatus) ([]models.OrderRequest, error) {
	query := r.db.Model(&models.OrderRequest{}).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.OrderRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list order requests: %w", err)
	}
	return requests, nil
}

// GetByOwner retrieves the requests owned by a user, most recent first.
func (r *GORMOrderRequestRepository) GetByOwner(userID string) ([]models.OrderRequest, error) {
	var requests []models.OrderRequest
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list order requests for user %s: %w", userID, err)
	}
	return requests, nil
}

// GetByID retrieves a single order request by its ID from the database.
func (r *GORMOrderRequestRepository) GetByID(id string) (*models.OrderRequest, error) {
	var request models.OrderRequest
	if err := r.db.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order request with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order request by ID %s: %w", id, err)
	}
	return &request, nil
}

// Create creates a new order request in the database.
func (r *GORMOrderRequestRepository) Create(request *models.OrderRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	if err := r.db.Create(request).Error; err != nil {
		return fmt.Errorf("failed to create order request: %w", err)
	}
	return nil
}

// UpdateStatus overwrites the request's status and bumps the update timestamp.
// Last writer wins; there is no version guard.
func (r *GORMOrderRequestRepository) UpdateStatus(id string, status models.OrderStatus) error {
	res := r.db.Model(&models.OrderRequest{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order request %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order request with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes an order request. Irreversible.
func (r *GORMOrderRequestRepository) Delete(id string) error {
	res := r.db.Delete(&models.OrderRequest{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order request with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
