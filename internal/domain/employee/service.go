package employee

import "context"

// EmployeeService defines business logic for employee management.
type EmployeeService interface {
	// Create registers the auth identity and profile in one transaction
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// Get retrieves a single employee
	Get(ctx context.Context, id string) (EmployeeResponse, error)

	// Update modifies profile fields
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Delete removes the profile, keeping the auth identity
	Delete(ctx context.Context, id string) error

	// List retrieves employees with filters and pagination
	List(ctx context.Context, filter EmployeeFilter) (ListEmployeesResponse, error)
}
