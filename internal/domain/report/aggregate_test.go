package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/attendance"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/employee"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func records(employeeID string, status attendance.Status, days ...time.Time) []attendance.Attendance {
	out := make([]attendance.Attendance, 0, len(days))
	for _, d := range days {
		out = append(out, attendance.Attendance{
			EmployeeID: employeeID,
			Date:       d,
			Status:     status,
		})
	}
	return out
}

func TestWorkingDays(t *testing.T) {
	// March 2026 starts on a Sunday; the 31st is a Tuesday.
	assert.Equal(t, 22, WorkingDays(day(2026, time.March, 31)))
	// Through Friday the 13th: two full weeks.
	assert.Equal(t, 10, WorkingDays(day(2026, time.March, 13)))
	// The 1st is a Sunday, so no working days yet.
	assert.Equal(t, 0, WorkingDays(day(2026, time.March, 1)))
	// A Saturday ref does not count itself.
	assert.Equal(t, 5, WorkingDays(day(2026, time.March, 7)))
}

func TestAggregateCountsAndPercentage(t *testing.T) {
	employees := []employee.Employee{
		{ID: "e1", Code: "EMP-001", Name: "Ayu"},
	}

	// 21 working days: June 2026, 1st (Monday) through the 29th.
	ref := day(2026, time.June, 29)
	require.Equal(t, 21, WorkingDays(ref))

	var recs []attendance.Attendance
	for i := 0; i < 18; i++ {
		recs = append(recs, attendance.Attendance{EmployeeID: "e1", Status: attendance.StatusPresent})
	}
	recs = append(recs, records("e1", attendance.StatusLate, day(2026, time.June, 1), day(2026, time.June, 2))...)

	rows := Aggregate(employees, recs, ref)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 18, row.Present)
	assert.Equal(t, 2, row.Late)
	assert.Equal(t, 0, row.HalfDay)
	assert.Equal(t, 1, row.Absent)
	assert.Equal(t, 20.0, row.EffectiveScore)
	// 100 * 20 / 21 rounds to 95
	assert.Equal(t, 95, row.Percentage)
}

func TestAggregateHalfDaysCountHalf(t *testing.T) {
	employees := []employee.Employee{{ID: "e1", Code: "EMP-001", Name: "Ayu"}}
	ref := day(2026, time.June, 5) // 5 working days

	recs := records("e1", attendance.StatusHalfDay,
		day(2026, time.June, 1), day(2026, time.June, 2), day(2026, time.June, 3), day(2026, time.June, 4))

	rows := Aggregate(employees, recs, ref)
	require.Len(t, rows, 1)

	assert.Equal(t, 4, rows[0].HalfDay)
	assert.Equal(t, 1, rows[0].Absent)
	assert.Equal(t, 2.0, rows[0].EffectiveScore)
	assert.Equal(t, 40, rows[0].Percentage)
}

func TestAggregateCapsAtHundred(t *testing.T) {
	employees := []employee.Employee{{ID: "e1"}}
	ref := day(2026, time.June, 1) // 1 working day

	// Two present records (e.g. a manual entry plus a real punch).
	recs := records("e1", attendance.StatusPresent, day(2026, time.June, 1), day(2026, time.May, 29))

	rows := Aggregate(employees, recs, ref)
	require.Len(t, rows, 1)
	assert.Equal(t, 100, rows[0].Percentage)
	assert.Equal(t, 0, rows[0].Absent)
}

func TestAggregateZeroWorkingDays(t *testing.T) {
	employees := []employee.Employee{{ID: "e1"}}
	ref := day(2026, time.March, 1) // Sunday the 1st

	rows := Aggregate(employees, nil, ref)
	require.Len(t, rows, 1)
	assert.Equal(t, 100, rows[0].Percentage)
	assert.Equal(t, 0, rows[0].Absent)
}

func TestAggregateSortsDescendingStable(t *testing.T) {
	employees := []employee.Employee{
		{ID: "low", Name: "Low"},
		{ID: "tie-a", Name: "Tie A"},
		{ID: "high", Name: "High"},
		{ID: "tie-b", Name: "Tie B"},
	}
	ref := day(2026, time.June, 5) // 5 working days

	var recs []attendance.Attendance
	recs = append(recs, records("low", attendance.StatusPresent, day(2026, time.June, 1))...)
	recs = append(recs, records("tie-a", attendance.StatusPresent, day(2026, time.June, 1), day(2026, time.June, 2), day(2026, time.June, 3))...)
	recs = append(recs, records("tie-b", attendance.StatusPresent, day(2026, time.June, 1), day(2026, time.June, 2), day(2026, time.June, 3))...)
	for d := 1; d <= 5; d++ {
		recs = append(recs, records("high", attendance.StatusPresent, day(2026, time.June, d))...)
	}

	rows := Aggregate(employees, recs, ref)
	require.Len(t, rows, 4)

	assert.Equal(t, "high", rows[0].EmployeeID)
	// Ties keep input order.
	assert.Equal(t, "tie-a", rows[1].EmployeeID)
	assert.Equal(t, "tie-b", rows[2].EmployeeID)
	assert.Equal(t, "low", rows[3].EmployeeID)
}

func TestAggregateSkipsUnknownEmployees(t *testing.T) {
	employees := []employee.Employee{{ID: "e1"}}
	ref := day(2026, time.June, 5)

	recs := records("ghost", attendance.StatusPresent, day(2026, time.June, 1))
	rows := Aggregate(employees, recs, ref)

	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Present)
}
