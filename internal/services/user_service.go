package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

// UserService exposes the admin-only roster operations: listing, role changes
// and removal.
type UserService struct {
	userRepo  repositories.UserRepository
	publisher EventPublisher
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, publisher EventPublisher) *UserService {
	return &UserService{
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// ListUsers returns the roster, newest first, optionally filtered by a search
// term over full name and email. Admin only.
func (s *UserService) ListUsers(subject *models.User, search string) ([]models.User, error) {
	if !IsAdmin(subject) {
		return nil, fmt.Errorf("%w: listing users is admin-only", ErrForbidden)
	}
	users, err := s.userRepo.List(search)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	// Hashes never leave the service layer
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// UpdateRole assigns a user a new role. Admin only. The change takes effect
// on the target's next authenticated request.
func (s *UserService) UpdateRole(subject *models.User, userID string, role models.Role) error {
	if !IsAdmin(subject) {
		return fmt.Errorf("%w: changing roles is admin-only", ErrForbidden)
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	if err := s.userRepo.UpdateRole(userID, role); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if s.publisher != nil {
		body, err := json.Marshal(map[string]interface{}{
			"user_id":    userID,
			"role":       role,
			"updated_by": subject.ID,
		})
		if err == nil {
			if err := s.publisher.Publish("user.role_changed", body); err != nil {
				log.Printf("Warning: Failed to publish role change event for user %s: %v", userID, err)
			}
		}
	}

	return nil
}

// DeleteUser removes a user from the roster. Admin only. The user's order
// requests survive with an unresolved owner reference.
func (s *UserService) DeleteUser(subject *models.User, userID string) error {
	if !IsAdmin(subject) {
		return fmt.Errorf("%w: deleting users is admin-only", ErrForbidden)
	}
	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}
