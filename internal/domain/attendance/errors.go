package attendance

import "errors"

// Attendance domain errors
var (
	// Punch errors
	ErrAlreadyPunchedIn     = errors.New("you have already punched in today")
	ErrNotPunchedIn         = errors.New("you have not punched in yet")
	ErrAlreadyPunchedOut    = errors.New("you have already punched out")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed radius")
	ErrPhotoRequired        = errors.New("a punch photo is required")
	ErrPhotoRejected        = errors.New("punch photo was rejected")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")

	// ErrEditConflict means another edit landed first; the caller must
	// re-fetch and retry with the fresh updated_at.
	ErrEditConflict = errors.New("record was modified by someone else")
)
