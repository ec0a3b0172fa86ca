package repositories

import "katalog/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	List(search string) ([]models.User, error)
	UpdateRole(id string, role models.Role) error
	Delete(id string) error
}
