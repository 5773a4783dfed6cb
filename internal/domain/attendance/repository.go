package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record. A duplicate
	// (employee_id, date) pair yields ErrAlreadyPunchedIn.
	Create(ctx context.Context, a Attendance) (Attendance, error)

	// GetByID retrieves a record by id
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for an employee on a
	// local calendar day; nil when none exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update updates punch-out fields of an open record
	Update(ctx context.Context, a Attendance) error

	// UpdateGuarded applies a correction only when updated_at still
	// equals expectedUpdatedAt; otherwise ErrEditConflict
	UpdateGuarded(ctx context.Context, a Attendance, expectedUpdatedAt time.Time) (Attendance, error)

	// Delete removes a record
	Delete(ctx context.Context, id string) error

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListByMonth retrieves all records whose date falls in the given
	// month, for aggregation
	ListByMonth(ctx context.Context, year int, month time.Month) ([]Attendance, error)

	// ListByEmployeeMonth retrieves one employee's records for a month,
	// newest date first
	ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]Attendance, error)

	// ListOpenBefore retrieves open records dated before the given day,
	// for the auto-close job
	ListOpenBefore(ctx context.Context, day time.Time) ([]Attendance, error)

	// CountByStatusOnDate counts records per status for one day
	CountByStatusOnDate(ctx context.Context, date time.Time) (map[Status]int, error)
}
