package models

import "gorm.io/gorm"

// User represents an authenticated principal. Role governs which operations
// are visible and writable; new registrations default to CUSTOMER.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	FullName   string `json:"full_name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       Role   `json:"role" gorm:"type:varchar(20);default:CUSTOMER"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
