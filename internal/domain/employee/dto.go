package employee

import (
	"strings"
	"time"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/user"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Role       string  `json:"role"`
	Mobile     *string `json:"mobile,omitempty"`
	Position   *string `json:"position,omitempty"`
	Department *string `json:"department,omitempty"`
	JoinDate   *string `json:"join_date,omitempty"` // YYYY-MM-DD
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	} else if !validator.IsValidEmployeeCode(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must be 3-20 characters of uppercase letters, digits and dashes",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	}

	if validator.IsEmpty(r.Role) {
		r.Role = string(user.RoleEmployee)
	} else if !user.ValidRole(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, manager, employee",
		})
	}

	if r.Mobile != nil && !validator.IsValidPhoneNumber(*r.Mobile) {
		errs = append(errs, validator.ValidationError{
			Field:   "mobile",
			Message: "mobile must be a valid phone number",
		})
	}

	if r.JoinDate != nil {
		if _, ok := validator.IsValidDate(*r.JoinDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "join_date",
				Message: "join_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID         string  `json:"-"`
	Name       *string `json:"name,omitempty"`
	Mobile     *string `json:"mobile,omitempty"`
	Position   *string `json:"position,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == nil && r.Mobile == nil && r.Position == nil && r.Department == nil && r.Status == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one field must be provided",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Mobile != nil && !validator.IsValidPhoneNumber(*r.Mobile) {
		errs = append(errs, validator.ValidationError{
			Field:   "mobile",
			Message: "mobile must be a valid phone number",
		})
	}

	if r.Status != nil && *r.Status != string(StatusActive) && *r.Status != string(StatusInactive) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be active or inactive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeFilter struct {
	Search     string
	Department string
	Status     string
	Page       int
	Limit      int
}

func (f *EmployeeFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Mobile     *string `json:"mobile,omitempty"`
	Position   *string `json:"position,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     string  `json:"status"`
	JoinDate   *string `json:"join_date,omitempty"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         e.ID,
		Code:       e.Code,
		Name:       e.Name,
		Email:      e.Email,
		Mobile:     e.Mobile,
		Position:   e.Position,
		Department: e.Department,
		Status:     string(e.Status),
	}
	if e.JoinDate != nil {
		s := e.JoinDate.Format(time.DateOnly)
		resp.JoinDate = &s
	}
	return resp
}

type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}
