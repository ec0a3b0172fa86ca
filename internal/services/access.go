package services

import "katalog/internal/models"

// CanAccess decides whether a subject may perform an operation. With no
// required roles any authenticated subject passes; with required roles the
// subject's role must be among them. A nil (anonymous) subject is always
// denied once any requirement exists. Pure function of the subject's stored
// role; role changes take effect on the next read.
//
// Route middleware consults this gate, but staff-only writes are additionally
// enforced inside the services themselves.
func CanAccess(subject *models.User, required ...models.Role) bool {
	if subject == nil {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, role := range required {
		if subject.Role == role {
			return true
		}
	}
	return false
}

// IsStaff reports whether the subject holds a staff role. Nil-safe.
func IsStaff(subject *models.User) bool {
	return subject != nil && subject.Role.IsStaff()
}

// IsAdmin reports whether the subject may manage the user roster. Nil-safe.
func IsAdmin(subject *models.User) bool {
	return subject != nil && subject.Role.IsAdmin()
}
