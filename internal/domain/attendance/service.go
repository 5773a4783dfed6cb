package attendance

import "context"

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// PunchIn processes a punch-in with settings gates (geofence,
	// photo, AI validation) and late classification
	PunchIn(ctx context.Context, req PunchInRequest) (AttendanceResponse, error)

	// PunchOut closes today's open record and computes worked minutes
	PunchOut(ctx context.Context, req PunchOutRequest) (AttendanceResponse, error)

	// Today returns the caller's record for the current day, nil data
	// when none exists
	Today(ctx context.Context, employeeID string) (*AttendanceResponse, error)

	// GetMyAttendance retrieves records for the authenticated employee
	GetMyAttendance(ctx context.Context, employeeID string, filter AttendanceFilter) (ListAttendanceResponse, error)

	// List retrieves records with filters (admin/manager)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// Get retrieves a single record by id
	Get(ctx context.Context, id string) (AttendanceResponse, error)

	// Update applies an admin/manager correction; reason mandatory,
	// optimistic-concurrency guarded
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// CreateManual injects a record for a missed day; reason mandatory
	CreateManual(ctx context.Context, req CreateManualRequest) (AttendanceResponse, error)

	// Delete removes a record (admin only, audited)
	Delete(ctx context.Context, id string, actorID string) error
}
