package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:00", "13:45", "23:59"}
	invalid := []string{"24:00", "9:00", "09:60", "09-00", "0900", "", "noon"}
	for _, s := range valid {
		if !IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", s)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"EMP-001", "A1B", "2026-INTERN-04"}
	invalid := []string{"ab", "emp-001", "EMP 001", "", "TOOLONGTOOLONGTOOLONG"}
	for _, code := range valid {
		if !IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", code)
		}
	}
}

func TestIsValidLatitudeLongitude(t *testing.T) {
	if !IsValidLatitude(0) || !IsValidLatitude(-90) || !IsValidLatitude(90) {
		t.Error("boundary latitudes should be valid")
	}
	if IsValidLatitude(90.1) || IsValidLatitude(-91) {
		t.Error("out-of-range latitudes should be invalid")
	}
	if !IsValidLongitude(180) || !IsValidLongitude(-180) || !IsValidLongitude(106.8) {
		t.Error("boundary longitudes should be valid")
	}
	if IsValidLongitude(180.1) || IsValidLongitude(-181) {
		t.Error("out-of-range longitudes should be invalid")
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2026-03-10"); !ok {
		t.Error("IsValidDate(2026-03-10) = false, want true")
	}
	for _, s := range []string{"10-03-2026", "2026-13-01", "2026-02-30", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{
		"2026-03-10T09:00:00Z",
		"2026-03-10T09:00:00+07:00",
		"2026-03-10T09:00:00.123456789Z",
	}
	invalid := []string{"2026-03-10", "2026-03-10 09:00:00", "", "yesterday"}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "password", Message: "password too short"},
	}

	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() returned %d entries, want 2", len(m))
	}
	if m["email"] != "email is required" {
		t.Errorf("ToMap()[email] = %q", m["email"])
	}
	if errs.Error() != "email: email is required; password: password too short" {
		t.Errorf("Error() = %q", errs.Error())
	}
}
