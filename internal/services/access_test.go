package services_test

import (
	"testing"

	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestCanAccess_AnonymousAlwaysDenied(t *testing.T) {
	assert.False(t, services.CanAccess(nil))
	assert.False(t, services.CanAccess(nil, models.RoleCustomer))
	assert.False(t, services.CanAccess(nil, models.RoleEmployee, models.RoleAdmin))
}

func TestCanAccess_NoRequirementMeansAnyAuthenticated(t *testing.T) {
	customer := &models.User{ID: "u1", Role: models.RoleCustomer}
	assert.True(t, services.CanAccess(customer))
}

func TestCanAccess_StaffRequirement(t *testing.T) {
	customer := &models.User{ID: "u1", Role: models.RoleCustomer}
	employee := &models.User{ID: "u2", Role: models.RoleEmployee}
	admin := &models.User{ID: "u3", Role: models.RoleAdmin}

	staff := []models.Role{models.RoleEmployee, models.RoleAdmin}

	assert.False(t, services.CanAccess(customer, staff...))
	assert.True(t, services.CanAccess(employee, staff...))
	assert.True(t, services.CanAccess(admin, staff...))
}

func TestCanAccess_SingleRoleRequirement(t *testing.T) {
	employee := &models.User{ID: "u2", Role: models.RoleEmployee}
	admin := &models.User{ID: "u3", Role: models.RoleAdmin}

	assert.False(t, services.CanAccess(employee, models.RoleAdmin))
	assert.True(t, services.CanAccess(admin, models.RoleAdmin))
}

func TestRolePredicates(t *testing.T) {
	assert.False(t, models.RoleCustomer.IsStaff())
	assert.True(t, models.RoleEmployee.IsStaff())
	assert.True(t, models.RoleAdmin.IsStaff())

	assert.False(t, models.RoleCustomer.IsAdmin())
	assert.False(t, models.RoleEmployee.IsAdmin())
	assert.True(t, models.RoleAdmin.IsAdmin())

	assert.True(t, services.IsStaff(&models.User{Role: models.RoleEmployee}))
	assert.False(t, services.IsStaff(nil))
	assert.False(t, services.IsAdmin(nil))
}

func TestParseRole(t *testing.T) {
	role, err := models.ParseRole("EMPLOYEE")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, role)

	_, err = models.ParseRole("SUPERUSER")
	assert.Error(t, err)
}
