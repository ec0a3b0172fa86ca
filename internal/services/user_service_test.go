package services_test

import (
	"testing"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newUserFixture(t *testing.T) (*services.UserService, *repositories.MockUserRepository, *MockPublisher) {
	t.Helper()

	userRepo := repositories.NewMockUserRepository()
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	for _, u := range []*models.User{
		{ID: "cust-1", Email: "customer@example.com", FullName: "Casey Customer", Role: models.RoleCustomer},
		{ID: "emp-1", Email: "employee@example.com", FullName: "Erin Employee", Role: models.RoleEmployee},
		{ID: "adm-1", Email: "admin@example.com", FullName: "Ada Admin", Role: models.RoleAdmin},
	} {
		assert.NoError(t, userRepo.Create(u))
	}

	return services.NewUserService(userRepo, publisher), userRepo, publisher
}

func TestUserService_ListUsersIsAdminOnly(t *testing.T) {
	service, _, _ := newUserFixture(t)

	employee := &models.User{ID: "emp-1", Role: models.RoleEmployee}
	admin := &models.User{ID: "adm-1", Role: models.RoleAdmin}

	_, err := service.ListUsers(employee, "")
	assert.ErrorIs(t, err, services.ErrForbidden)
	_, err = service.ListUsers(nil, "")
	assert.ErrorIs(t, err, services.ErrForbidden)

	users, err := service.ListUsers(admin, "")
	assert.NoError(t, err)
	assert.Len(t, users, 3)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}

	users, err = service.ListUsers(admin, "casey")
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "customer@example.com", users[0].Email)
}

func TestUserService_UpdateRole(t *testing.T) {
	service, userRepo, publisher := newUserFixture(t)

	admin := &models.User{ID: "adm-1", Role: models.RoleAdmin}
	employee := &models.User{ID: "emp-1", Role: models.RoleEmployee}

	// Only admins may change roles; employees are staff but not enough
	err := service.UpdateRole(employee, "cust-1", models.RoleEmployee)
	assert.ErrorIs(t, err, services.ErrForbidden)

	err = service.UpdateRole(admin, "cust-1", "SUPERUSER")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	err = service.UpdateRole(admin, "missing", models.RoleEmployee)
	assert.ErrorIs(t, err, services.ErrNotFound)

	err = service.UpdateRole(admin, "cust-1", models.RoleEmployee)
	assert.NoError(t, err)

	// Effective on the next read
	promoted, err := userRepo.GetByID("cust-1")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, promoted.Role)

	publisher.AssertCalled(t, "Publish", "user.role_changed", mock.Anything)
}

func TestUserService_DeleteUser(t *testing.T) {
	service, userRepo, _ := newUserFixture(t)

	admin := &models.User{ID: "adm-1", Role: models.RoleAdmin}
	employee := &models.User{ID: "emp-1", Role: models.RoleEmployee}

	err := service.DeleteUser(employee, "cust-1")
	assert.ErrorIs(t, err, services.ErrForbidden)

	err = service.DeleteUser(admin, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.NoError(t, service.DeleteUser(admin, "cust-1"))
	_, err = userRepo.GetByID("cust-1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
