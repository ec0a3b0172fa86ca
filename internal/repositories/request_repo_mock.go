package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"katalog/internal/models"

	"github.com/google/uuid"
)

// MockOrderRequestRepository is an in-memory implementation of
// OrderRequestRepository.
type MockOrderRequestRepository struct {
	requests map[string]models.OrderRequest
	mu       sync.RWMutex
}

// NewMockOrderRequestRepository creates a new instance of
// MockOrderRequestRepository.
func NewMockOrderRequestRepository() *MockOrderRequestRepository {
	return &MockOrderRequestRepository{
		requests: make(map[string]models.OrderRequest),
	}
}

// GetAll returns all order requests, most recent first, optionally filtered
// to a single status.
func (r *MockOrderRequestRepository) GetAll(status models.OrderStatus) ([]models.OrderRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.OrderRequest, 0, len(r.requests))
	for _, req := range r.requests {
		if status != "" && req.Status != status {
			continue
		}
		list = append(list, req)
	}
	sortMostRecentFirst(list)
	return list, nil
}

// GetByOwner returns the requests owned by a user, most recent first.
func (r *MockOrderRequestRepository) GetByOwner(userID string) ([]models.OrderRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.OrderRequest, 0)
	for _, req := range r.requests {
		if req.UserID == userID {
			list = append(list, req)
		}
	}
	sortMostRecentFirst(list)
	return list, nil
}

// GetByID returns an order request by its ID.
func (r *MockOrderRequestRepository) GetByID(id string) (*models.OrderRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.requests[id]
	if !ok {
		return nil, fmt.Errorf("order request with ID %s: %w", id, ErrNotFound)
	}
	return &request, nil
}

// Create adds a new order request.
func (r *MockOrderRequestRepository) Create(request *models.OrderRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	r.requests[request.ID] = *request
	return nil
}

// UpdateStatus overwrites the status of an order request.
func (r *MockOrderRequestRepository) UpdateStatus(id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[id]
	if !ok {
		return fmt.Errorf("order request with ID %s: %w", id, ErrNotFound)
	}
	request.Status = status
	request.UpdatedAt = time.Now()
	r.requests[id] = request
	return nil
}

// Delete removes an order request by its ID.
func (r *MockOrderRequestRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.requests[id]
	if !ok {
		return fmt.Errorf("order request with ID %s: %w", id, ErrNotFound)
	}
	delete(r.requests, id)
	return nil
}

func sortMostRecentFirst(list []models.OrderRequest) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
