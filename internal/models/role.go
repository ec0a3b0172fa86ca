package models

import "fmt"

// Role classifies a user into one of three tiers. CUSTOMER is the default for
// new registrations; EMPLOYEE and ADMIN together form the staff set, and only
// ADMIN may manage the user roster.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole validates a raw string against the known roles.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// IsStaff reports whether the role belongs to the staff capability set.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// IsAdmin reports whether the role may manage users.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
