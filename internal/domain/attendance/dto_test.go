package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/validator"
)

func strPtr(s string) *string { return &s }

func validUpdateRequest() UpdateAttendanceRequest {
	return UpdateAttendanceRequest{
		ID:                "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		EditedBy:          "admin-1",
		Status:            strPtr("present"),
		Reason:            "Forgot to punch out, confirmed with team lead",
		ExpectedUpdatedAt: "2026-03-10T09:00:00Z",
	}
}

func TestUpdateAttendanceRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := validUpdateRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("reason required", func(t *testing.T) {
		req := validUpdateRequest()
		req.Reason = ""
		assertFieldError(t, req.Validate(), "reason")
	})

	t.Run("whitespace reason rejected", func(t *testing.T) {
		req := validUpdateRequest()
		req.Reason = "   "
		assertFieldError(t, req.Validate(), "reason")
	})

	t.Run("at least one field", func(t *testing.T) {
		req := validUpdateRequest()
		req.Status = nil
		req.PunchIn = nil
		req.PunchOut = nil
		assertFieldError(t, req.Validate(), "body")
	})

	t.Run("absent is not storable", func(t *testing.T) {
		req := validUpdateRequest()
		req.Status = strPtr("absent")
		assertFieldError(t, req.Validate(), "status")
	})

	t.Run("bad punch_in timestamp", func(t *testing.T) {
		req := validUpdateRequest()
		req.PunchIn = strPtr("10-03-2026 09:00")
		assertFieldError(t, req.Validate(), "punch_in")
	})

	t.Run("expected_updated_at required", func(t *testing.T) {
		req := validUpdateRequest()
		req.ExpectedUpdatedAt = ""
		assertFieldError(t, req.Validate(), "expected_updated_at")
	})
}

func TestCreateManualRequestValidate(t *testing.T) {
	valid := CreateManualRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-09",
		Status:     "half_day",
		Reason:     "Worked offsite half the day",
	}
	assert.NoError(t, valid.Validate())

	noReason := valid
	noReason.Reason = ""
	assertFieldError(t, noReason.Validate(), "reason")

	badDate := valid
	badDate.Date = "09/03/2026"
	assertFieldError(t, badDate.Validate(), "date")

	badStatus := valid
	badStatus.Status = "absent"
	assertFieldError(t, badStatus.Validate(), "status")
}

func TestPunchInRequestValidate(t *testing.T) {
	req := PunchInRequest{
		EmployeeID: "emp-1",
		Latitude:   -6.2,
		Longitude:  106.8,
	}
	assert.NoError(t, req.Validate())

	req.Latitude = 91
	assertFieldError(t, req.Validate(), "latitude")

	req.Latitude = -6.2
	req.Longitude = -181
	assertFieldError(t, req.Validate(), "longitude")
}

func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	if !assert.Error(t, err) {
		return
	}
	errs, ok := err.(validator.ValidationErrors)
	if !assert.True(t, ok, "expected validator.ValidationErrors, got %T", err) {
		return
	}
	_, present := errs.ToMap()[field]
	assert.True(t, present, "expected error on field %q, got %v", field, errs.ToMap())
}
