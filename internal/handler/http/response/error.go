package response

import (
	"errors"
	"net/http"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/attendance"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/auth"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/employee"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/report"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/settings"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/user"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/timeout"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthNotLinked):
		Forbidden(w, "No account linked to this Google identity")
	case errors.Is(err, auth.ErrEmailNotVerified):
		Forbidden(w, "Google account email is not verified")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrMobileExists):
		Conflict(w, "Mobile number already registered")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, "Already punched in today")
	case errors.Is(err, attendance.ErrNotPunchedIn):
		BadRequest(w, "You have not punched in yet", nil)
	case errors.Is(err, attendance.ErrAlreadyPunchedOut):
		Conflict(w, "Already punched out")
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		Forbidden(w, "You are outside the allowed punch radius")
	case errors.Is(err, attendance.ErrPhotoRequired):
		BadRequest(w, "A punch photo is required", nil)
	case errors.Is(err, attendance.ErrPhotoRejected):
		UnprocessableEntity(w, "PHOTO_REJECTED", err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrEditConflict):
		Conflict(w, "Record was modified by someone else; refresh and retry")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance record")

	// Settings
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Settings not found")

	// Reports
	case errors.Is(err, report.ErrFutureMonth):
		BadRequest(w, "Requested month has not started yet", nil)

	// Timeouts
	case errors.Is(err, timeout.ErrTimedOut):
		GatewayTimeout(w, "The operation timed out, please try again")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
