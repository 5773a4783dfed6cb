package employee

import "context"

// EmployeeRepository defines data access methods for employee profiles.
type EmployeeRepository interface {
	// Create creates a new employee profile
	Create(ctx context.Context, e Employee) (Employee, error)

	// GetByID retrieves an employee by id
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByUserID retrieves the profile belonging to an auth identity
	GetByUserID(ctx context.Context, userID string) (Employee, error)

	// Update updates mutable profile fields
	Update(ctx context.Context, e Employee) error

	// Delete removes the profile row; the auth identity is kept
	Delete(ctx context.Context, id string) error

	// List retrieves employees with filters and pagination
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)

	// ListActive retrieves all active employees, for aggregation
	ListActive(ctx context.Context) ([]Employee, error)

	// CountActive returns the number of active employees
	CountActive(ctx context.Context) (int64, error)
}
