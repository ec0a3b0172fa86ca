package models

import (
	"fmt"
	"time"
)

// OrderStatus marks where an order request sits in its lifecycle.
//
// The intended business flow is:
//
//	NEW -> IN_REVIEW -> OFFER_SENT -> CONFIRMED
//	NEW/IN_REVIEW/OFFER_SENT -> REJECTED
//
// The flow is not enforced server-side: any staff member may set any of the
// five values, matching how requests are actually worked (e.g. re-opening a
// rejected request). Customers may never write the status.
type OrderStatus string

const (
	StatusNew       OrderStatus = "NEW"
	StatusInReview  OrderStatus = "IN_REVIEW"
	StatusOfferSent OrderStatus = "OFFER_SENT"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusRejected  OrderStatus = "REJECTED"
)

// ParseOrderStatus validates a raw string against the five known statuses.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusNew, StatusInReview, StatusOfferSent, StatusConfirmed, StatusRejected:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status: %q", s)
}

// OrderRequestItem is a single line captured by value at submission time.
// Later changes to the product (price, deletion) do not alter it.
type OrderRequestItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// OrderRequest is a customer-submitted quote request. The item list is an
// immutable snapshot of the cart; status is the only field mutated after
// creation, and only by staff. The owning user may be deleted later, in which
// case UserID dangles and views fall back to the raw id.
type OrderRequest struct {
	ID        string             `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string             `json:"user_id" gorm:"index;type:varchar(36)"`
	Items     []OrderRequestItem `json:"items" gorm:"serializer:json"`
	Notes     string             `json:"notes,omitempty"`
	Status    OrderStatus        `json:"status" gorm:"type:varchar(20);index"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
