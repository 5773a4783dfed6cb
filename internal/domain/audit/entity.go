package audit

import "time"

// Entry is one append-only audit record. Writes go through the
// best-effort wrapper; a failed audit write never fails the action it
// describes.
type Entry struct {
	ID        string
	ActorID   string
	Action    string // e.g. "attendance.update"
	Entity    string // e.g. "attendance"
	EntityID  string
	Changes   map[string]interface{} // stored as JSONB
	CreatedAt time.Time
}

// Common action names.
const (
	ActionAttendanceUpdate = "attendance.update"
	ActionAttendanceCreate = "attendance.manual_create"
	ActionAttendanceDelete = "attendance.delete"
	ActionEmployeeCreate   = "employee.create"
	ActionEmployeeUpdate   = "employee.update"
	ActionEmployeeDelete   = "employee.delete"
	ActionSettingsDeploy   = "settings.deploy"
)
