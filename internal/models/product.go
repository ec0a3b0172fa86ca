package models

import "gorm.io/gorm"

// StringList is a JSON-serialized list column (e.g. product image URLs).
type StringList []string

// Attributes is a JSON-serialized map of free-form display attributes,
// e.g. {"material": "oak", "width": "120 cm"}. Unknown keys are displayed
// verbatim rather than interpreted.
type Attributes map[string]string

// Category groups products for browsing. Products reference it through an
// optional foreign key; deleting a category leaves the reference dangling and
// product display falls back to "Uncategorized".
type Category struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Slug        string `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Name        string `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Product represents a catalog product. Only active products are shown to
// customers; staff see all.
type Product struct {
	ID               string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Slug             string     `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	CategoryID       string     `json:"category_id,omitempty" gorm:"type:varchar(36)" validate:"omitempty,uuid"`
	Name             string     `json:"name" validate:"required,min=3,max=100"`
	ShortDescription string     `json:"short_description" validate:"omitempty,max=200"`
	Description      string     `json:"description" validate:"omitempty,max=5000"`
	Images           StringList `json:"images" gorm:"serializer:json"`
	BasePrice        float64    `json:"base_price" validate:"gte=0"`
	Attributes       Attributes `json:"attributes" gorm:"serializer:json"`
	IsActive         bool       `json:"is_active" gorm:"default:true"`
	gorm.Model                  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
