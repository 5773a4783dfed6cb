package attendance

import "time"

// Status of an attendance record. ABSENT is never stored; it is derived
// by the monthly aggregation from missing records. HALF_DAY is only
// ever assigned by a manual correction.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	StatusAbsent  Status = "absent"
)

// StorableStatus reports whether s may be written to a record row.
func StorableStatus(s string) bool {
	switch Status(s) {
	case StatusPresent, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time // local calendar day, midnight
	PunchIn       *time.Time
	PunchOut      *time.Time
	WorkedMinutes *int
	Latitude      *float64
	Longitude     *float64
	PhotoURL      *string
	Status        Status
	EditedBy      *string
	EditReason    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	EmployeeName *string
	EmployeeCode *string
}

// Open reports whether the record has a punch-in without a punch-out.
func (a *Attendance) Open() bool {
	return a.PunchIn != nil && a.PunchOut == nil
}
