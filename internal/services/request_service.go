package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

// RequestService owns the order request lifecycle: creation from a cart
// snapshot, role-gated listing and visibility, status transitions and
// administrative deletion. Authorization is enforced here, not only at the
// route layer.
type RequestService struct {
	requestRepo repositories.OrderRequestRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	publisher   EventPublisher
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requestRepo repositories.OrderRequestRepository,
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	publisher EventPublisher,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// Create submits a new order request for the subject. Items are validated
// before any persistence call: the list must be non-empty, every quantity
// positive, and every product id must resolve to an existing product (active
// or not — staff can still quote an unlisted item). The stored item list is a
// snapshot; later product changes do not alter it.
//
// Clearing the caller's cart after a successful submission is the caller's
// responsibility.
func (s *RequestService) Create(subject *models.User, items []models.OrderRequestItem, notes string) (*models.OrderRequest, error) {
	if subject == nil {
		return nil, fmt.Errorf("%w: order requests require a signed-in user", ErrUnauthenticated)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order request needs at least one item", ErrInvalidInput)
	}

	snapshot := make([]models.OrderRequestItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1 for product %s", ErrInvalidInput, item.ProductID)
		}
		if _, err := s.productRepo.GetByID(item.ProductID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown product %s", ErrNotFound, item.ProductID)
			}
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		snapshot = append(snapshot, models.OrderRequestItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	request := &models.OrderRequest{
		UserID: subject.ID,
		Items:  snapshot,
		Notes:  notes,
		Status: models.StatusNew,
	}
	if err := s.requestRepo.Create(request); err != nil {
		return nil, fmt.Errorf("%w: failed to create order request: %v", ErrUpstream, err)
	}

	s.publishEvent("request.created", map[string]interface{}{
		"request_id": request.ID,
		"user_id":    request.UserID,
		"status":     request.Status,
		"items":      len(request.Items),
	})

	return request, nil
}

// ListMine returns the subject's own requests, most recent first.
func (s *RequestService) ListMine(subject *models.User) ([]models.OrderRequest, error) {
	if subject == nil {
		return nil, fmt.Errorf("%w: sign in to view your requests", ErrUnauthenticated)
	}
	requests, err := s.requestRepo.GetByOwner(subject.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return requests, nil
}

// ListAll returns every request, most recent first, optionally filtered to a
// single status. Staff only.
func (s *RequestService) ListAll(subject *models.User, status models.OrderStatus) ([]models.OrderRequest, error) {
	if !IsStaff(subject) {
		return nil, fmt.Errorf("%w: listing all requests is staff-only", ErrForbidden)
	}
	requests, err := s.requestRepo.GetAll(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return requests, nil
}

// GetByID returns a single request, visible to its owner and to staff.
func (s *RequestService) GetByID(subject *models.User, id string) (*models.OrderRequest, error) {
	request, err := s.requestRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: order request %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if subject == nil {
		return nil, fmt.Errorf("%w: sign in to view this request", ErrUnauthenticated)
	}
	if subject.ID != request.UserID && !IsStaff(subject) {
		return nil, fmt.Errorf("%w: not your request", ErrForbidden)
	}
	return request, nil
}

// UpdateStatus overwrites a request's status. Staff may set any of the five
// enumerated values; the intended NEW -> IN_REVIEW -> OFFER_SENT ->
// CONFIRMED/REJECTED flow is documentation, not an enforced transition table.
// Customers may never write the status. Concurrent staff writes race and the
// last one wins.
func (s *RequestService) UpdateStatus(subject *models.User, id string, status models.OrderStatus) error {
	if !IsStaff(subject) {
		return fmt.Errorf("%w: updating request status is staff-only", ErrForbidden)
	}
	if _, err := models.ParseOrderStatus(string(status)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.requestRepo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: order request %s", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	s.publishEvent("request.status_updated", map[string]interface{}{
		"request_id": id,
		"status":     status,
		"updated_by": subject.ID,
	})

	return nil
}

// Delete removes a request permanently. Staff only; customers keep their
// history.
func (s *RequestService) Delete(subject *models.User, id string) error {
	if !IsStaff(subject) {
		return fmt.Errorf("%w: deleting requests is staff-only", ErrForbidden)
	}
	if err := s.requestRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: order request %s", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}

// ResolvedItem is a request line prepared for display: the stored snapshot
// plus whatever the product looks like now. When the product has been deleted
// since submission, Missing is set and the name falls back to a placeholder
// built from the raw id.
type ResolvedItem struct {
	ProductID   string  `json:"product_id"`
	Quantity    int     `json:"quantity"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
	Missing     bool    `json:"missing"`
}

// RequestView is a display projection of an order request with items and
// owner resolved against current data.
type RequestView struct {
	Request        models.OrderRequest `json:"request"`
	Owner          string              `json:"owner"`
	Items          []ResolvedItem      `json:"items"`
	EstimatedTotal float64             `json:"estimated_total"`
}

// Resolve builds the display view of a request. Each item is looked up by id
// through the catalog; deleted products degrade to a placeholder rather than
// failing the whole view, and a deleted owner degrades to the raw id. Prices
// are current estimates, not what will be quoted.
func (s *RequestService) Resolve(request *models.OrderRequest) RequestView {
	view := RequestView{
		Request: *request,
		Owner:   fmt.Sprintf("User %s", shortID(request.UserID)),
		Items:   make([]ResolvedItem, 0, len(request.Items)),
	}
	if owner, err := s.userRepo.GetByID(request.UserID); err == nil {
		view.Owner = owner.Email
	}

	for _, item := range request.Items {
		resolved := ResolvedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			resolved.ProductName = fmt.Sprintf("Product %s", shortID(item.ProductID))
			resolved.Missing = true
		} else {
			resolved.ProductName = product.Name
			resolved.UnitPrice = product.BasePrice
			resolved.Subtotal = product.BasePrice * float64(item.Quantity)
			view.EstimatedTotal += resolved.Subtotal
		}
		view.Items = append(view.Items, resolved)
	}
	return view
}

func (s *RequestService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
