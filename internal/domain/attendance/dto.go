package attendance

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/validator"
)

type PunchInRequest struct {
	EmployeeID string                `json:"-"`
	Latitude   float64               `json:"latitude"`
	Longitude  float64               `json:"longitude"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *PunchInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	// Whether a photo is mandatory is a settings decision made in the
	// service; here we only validate a photo that was provided.
	if r.FileHeader != nil {
		filename := r.FileHeader.Filename
		idx := strings.LastIndex(filename, ".")
		ext := ""
		if idx >= 0 {
			ext = strings.ToLower(filename[idx:])
		}
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if r.FileHeader.Size > 10<<20 { // 10MB
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "punch photo size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchOutRequest struct {
	EmployeeID string  `json:"-"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

func (r *PunchOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest is an admin/manager correction of an existing
// record. Reason is mandatory and checked before any repository call.
// ExpectedUpdatedAt guards against concurrent edits.
type UpdateAttendanceRequest struct {
	ID                string  `json:"-"`
	EditedBy          string  `json:"-"`
	Status            *string `json:"status,omitempty"`
	PunchIn           *string `json:"punch_in,omitempty"`  // RFC3339
	PunchOut          *string `json:"punch_out,omitempty"` // RFC3339
	Reason            string  `json:"reason"`
	ExpectedUpdatedAt string  `json:"expected_updated_at"` // RFC3339
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "a non-empty reason is required for every correction",
		})
	}

	if r.Status == nil && r.PunchIn == nil && r.PunchOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of status, punch_in, punch_out must be provided",
		})
	}

	if r.Status != nil && !StorableStatus(*r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, late, half_day",
		})
	}

	if r.PunchIn != nil {
		if _, ok := validator.IsValidDateTime(*r.PunchIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "punch_in",
				Message: "punch_in must be an RFC3339 timestamp",
			})
		}
	}
	if r.PunchOut != nil {
		if _, ok := validator.IsValidDateTime(*r.PunchOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "punch_out",
				Message: "punch_out must be an RFC3339 timestamp",
			})
		}
	}

	if validator.IsEmpty(r.ExpectedUpdatedAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "expected_updated_at",
			Message: "expected_updated_at is required",
		})
	} else if _, ok := validator.IsValidDateTime(r.ExpectedUpdatedAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "expected_updated_at",
			Message: "expected_updated_at must be an RFC3339 timestamp",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CreateManualRequest injects a record for a day the employee never
// punched on. Reason is mandatory, same as corrections.
type CreateManualRequest struct {
	EmployeeID string  `json:"employee_id"`
	EditedBy   string  `json:"-"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Status     string  `json:"status"`
	PunchIn    *string `json:"punch_in,omitempty"`  // RFC3339
	PunchOut   *string `json:"punch_out,omitempty"` // RFC3339
	Reason     string  `json:"reason"`
}

func (r *CreateManualRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "a non-empty reason is required for every manual entry",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !StorableStatus(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, late, half_day",
		})
	}

	if r.PunchIn != nil {
		if _, ok := validator.IsValidDateTime(*r.PunchIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "punch_in",
				Message: "punch_in must be an RFC3339 timestamp",
			})
		}
	}
	if r.PunchOut != nil {
		if _, ok := validator.IsValidDateTime(*r.PunchOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "punch_out",
				Message: "punch_out must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceFilter struct {
	EmployeeID string
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     string
	Page       int
	Limit      int
}

func (f *AttendanceFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type AttendanceResponse struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employee_id"`
	EmployeeName  *string  `json:"employee_name,omitempty"`
	EmployeeCode  *string  `json:"employee_code,omitempty"`
	Date          string   `json:"date"`
	PunchIn       *string  `json:"punch_in,omitempty"`
	PunchOut      *string  `json:"punch_out,omitempty"`
	WorkedMinutes *int     `json:"worked_minutes,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	PhotoURL      *string  `json:"photo_url,omitempty"`
	Status        string   `json:"status"`
	EditedBy      *string  `json:"edited_by,omitempty"`
	EditReason    *string  `json:"edit_reason,omitempty"`
	UpdatedAt     string   `json:"updated_at"`
}

func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeName:  a.EmployeeName,
		EmployeeCode:  a.EmployeeCode,
		Date:          a.Date.Format(time.DateOnly),
		WorkedMinutes: a.WorkedMinutes,
		Latitude:      a.Latitude,
		Longitude:     a.Longitude,
		PhotoURL:      a.PhotoURL,
		Status:        string(a.Status),
		EditedBy:      a.EditedBy,
		EditReason:    a.EditReason,
		UpdatedAt:     a.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if a.PunchIn != nil {
		s := a.PunchIn.UTC().Format(time.RFC3339)
		resp.PunchIn = &s
	}
	if a.PunchOut != nil {
		s := a.PunchOut.UTC().Format(time.RFC3339)
		resp.PunchOut = &s
	}
	return resp
}

type ListAttendanceResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
}
