package settings

import (
	"time"

	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/validator"
)

type DeployRequest struct {
	ActorID               string  `json:"-"`
	AttendanceWindowStart string  `json:"attendance_window_start"`
	LateThresholdMinutes  int     `json:"late_threshold_minutes"`
	LocationMandatory     bool    `json:"location_mandatory"`
	PhotoMandatory        bool    `json:"photo_mandatory"`
	DeviceBinding         bool    `json:"device_binding"`
	OfficeLatitude        float64 `json:"office_latitude"`
	OfficeLongitude       float64 `json:"office_longitude"`
	OfficeRadiusM         float64 `json:"office_radius_m"`
}

func (r *DeployRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidTimeOfDay(r.AttendanceWindowStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_window_start",
			Message: "attendance_window_start must be in HH:MM 24-hour format",
		})
	}

	if r.LateThresholdMinutes < 0 || r.LateThresholdMinutes > 720 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_threshold_minutes",
			Message: "late_threshold_minutes must be between 0 and 720",
		})
	}

	if r.LocationMandatory {
		if !validator.IsValidLatitude(r.OfficeLatitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "office_latitude",
				Message: "office_latitude must be between -90 and 90",
			})
		}
		if !validator.IsValidLongitude(r.OfficeLongitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "office_longitude",
				Message: "office_longitude must be between -180 and 180",
			})
		}
		if r.OfficeRadiusM <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "office_radius_m",
				Message: "office_radius_m must be greater than 0",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	AttendanceWindowStart string  `json:"attendance_window_start"`
	LateThresholdMinutes  int     `json:"late_threshold_minutes"`
	LocationMandatory     bool    `json:"location_mandatory"`
	PhotoMandatory        bool    `json:"photo_mandatory"`
	DeviceBinding         bool    `json:"device_binding"`
	OfficeLatitude        float64 `json:"office_latitude"`
	OfficeLongitude       float64 `json:"office_longitude"`
	OfficeRadiusM         float64 `json:"office_radius_m"`
	UpdatedAt             string  `json:"updated_at"`
}

func ToResponse(s AppSettings) SettingsResponse {
	return SettingsResponse{
		AttendanceWindowStart: s.AttendanceWindowStart,
		LateThresholdMinutes:  s.LateThresholdMinutes,
		LocationMandatory:     s.LocationMandatory,
		PhotoMandatory:        s.PhotoMandatory,
		DeviceBinding:         s.DeviceBinding,
		OfficeLatitude:        s.OfficeLatitude,
		OfficeLongitude:       s.OfficeLongitude,
		OfficeRadiusM:         s.OfficeRadiusM,
		UpdatedAt:             s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
