package user

import "time"

// Role is fixed at account creation and carried in JWT claims. It is
// never derived from the email address.
type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, manages employees and settings
	RoleManager  Role = "manager"  // Can view everyone and correct attendance
	RoleEmployee Role = "employee" // Regular employee
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID              string
	Email           string
	Name            string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user has full administrative access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// CanCorrectAttendance checks if user may edit other people's records
func (u *User) CanCorrectAttendance() bool {
	return u.IsManager()
}

// CanManageEmployees checks if user may create or delete employees
func (u *User) CanManageEmployees() bool {
	return u.IsAdmin()
}
