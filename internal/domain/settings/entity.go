package settings

import "time"

// AppSettings is a singleton row of attendance rules. Deploy replaces
// the whole row; readers always see one consistent rule set.
type AppSettings struct {
	AttendanceWindowStart string // "HH:MM", shift start
	LateThresholdMinutes  int
	LocationMandatory     bool
	PhotoMandatory        bool
	DeviceBinding         bool
	OfficeLatitude        float64
	OfficeLongitude       float64
	OfficeRadiusM         float64
	UpdatedAt             time.Time
	UpdatedBy             *string
}

// Defaults returns the rule set used before any deploy.
func Defaults() AppSettings {
	return AppSettings{
		AttendanceWindowStart: "09:00",
		LateThresholdMinutes:  15,
		LocationMandatory:     false,
		PhotoMandatory:        false,
		DeviceBinding:         false,
		OfficeLatitude:        0,
		OfficeLongitude:       0,
		OfficeRadiusM:         100,
	}
}
