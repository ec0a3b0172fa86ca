package services

import (
	"errors"
	"fmt"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

// CatalogService is a thin surface over the product and category stores.
// Reads are public (customers only see active products); writes are
// staff-only, enforced here as well as at the route layer.
type CatalogService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ProductQuery narrows a product listing.
type ProductQuery struct {
	CategorySlug string
	Search       string
	Page         int
	Limit        int
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products   []models.Product `json:"products"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
}

// ListProducts returns a page of products. Anonymous and customer subjects
// only see active products; staff see everything. An unknown category slug
// simply drops the category filter.
func (s *CatalogService) ListProducts(subject *models.User, query ProductQuery) (*ProductPage, error) {
	filter := repositories.ProductFilter{
		Search:     query.Search,
		ActiveOnly: !IsStaff(subject),
		Page:       query.Page,
		Limit:      query.Limit,
	}
	if query.CategorySlug != "" {
		category, err := s.categoryRepo.GetBySlug(query.CategorySlug)
		if err == nil {
			filter.CategoryID = category.ID
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	totalPages := 1
	if query.Limit > 0 {
		totalPages = int((total + int64(query.Limit) - 1) / int64(query.Limit))
	}
	return &ProductPage{
		Products:   products,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// GetProductBySlug returns a single product. Inactive products are hidden
// from non-staff subjects.
func (s *CatalogService) GetProductBySlug(subject *models.User, slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, slug)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if !product.IsActive && !IsStaff(subject) {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, slug)
	}
	return product, nil
}

// GetProductByID returns a single product by id, without visibility checks.
// Used internally for cart and request item resolution.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return product, nil
}

// CreateProduct creates a new product. Staff only.
func (s *CatalogService) CreateProduct(subject *models.User, product *models.Product) error {
	if !IsStaff(subject) {
		return fmt.Errorf("%w: catalog writes are staff-only", ErrForbidden)
	}
	if product.BasePrice < 0 {
		return fmt.Errorf("%w: base price must not be negative", ErrInvalidInput)
	}
	if err := s.productRepo.Create(product); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}

// UpdateProduct updates an existing product. Staff only.
func (s *CatalogService) UpdateProduct(subject *models.User, product *models.Product) error {
	if !IsStaff(subject) {
		return fmt.Errorf("%w: catalog writes are staff-only", ErrForbidden)
	}
	if product.BasePrice < 0 {
		return fmt.Errorf("%w: base price must not be negative", ErrInvalidInput)
	}
	if err := s.productRepo.Update(product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: product %s", ErrNotFound, product.ID)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}

// DeleteProduct deletes a product. Staff only. Submitted order requests keep
// their snapshot of the product id and degrade to a placeholder on display.
func (s *CatalogService) DeleteProduct(subject *models.User, id string) error {
	if !IsStaff(subject) {
		return fmt.Errorf("%w: catalog writes are staff-only", ErrForbidden)
	}
	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}

// ListCategories returns all categories ordered by name.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return categories, nil
}

// GetCategoryBySlug returns a single category.
func (s *CatalogService) GetCategoryBySlug(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s", ErrNotFound, slug)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return category, nil
}

// CategoryDisplayName resolves a product's category reference for display.
// Dangling or empty references fall back to "Uncategorized" instead of
// failing the product view.
func (s *CatalogService) CategoryDisplayName(categoryID string) string {
	if categoryID == "" {
		return "Uncategorized"
	}
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return "Uncategorized"
	}
	return category.Name
}

// CreateCategory creates a new category. Staff only.
func (s *CatalogService) CreateCategory(subject *models.User, category *models.Category) error {
	if !IsStaff(subject) {
		return fmt.Errorf("%w: catalog writes are staff-only", ErrForbidden)
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}

// UpdateCategory updates an existing category. Staff only.
func (s *CatalogService) UpdateCategory(subject *models.User, category *models.Category) error {
	if !IsStaff(subject) {
		return fmt.Errorf("%w: catalog writes are staff-only", ErrForbidden)
	}
	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: category %s", ErrNotFound, category.ID)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}

// DeleteCategory deletes a category. Staff only. Products that referenced it
// keep a dangling id and display as "Uncategorized".
func (s *CatalogService) DeleteCategory(subject *models.User, id string) error {
	if !IsStaff(subject) {
		return fmt.Errorf("%w: catalog writes are staff-only", ErrForbidden)
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: category %s", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}
