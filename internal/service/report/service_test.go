package report

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/attendance"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/employee"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/report"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) ListByMonth(ctx context.Context, year int, month time.Month) ([]attendance.Attendance, error) {
	return f.records, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func fixedNow() time.Time {
	// Friday, June 12th 2026; 10 working days so far that month.
	return time.Date(2026, time.June, 12, 15, 0, 0, 0, time.UTC)
}

func newTestService(employees []employee.Employee, records []attendance.Attendance) *Service {
	svc := NewReportService(
		&fakeAttendanceRepo{records: records},
		&fakeEmployeeRepo{employees: employees},
	)
	svc.now = fixedNow
	return svc
}

func dayRecords(employeeID string, status attendance.Status, count int) []attendance.Attendance {
	out := make([]attendance.Attendance, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, attendance.Attendance{
			ID:         employeeID + "-" + string(rune('a'+i)),
			EmployeeID: employeeID,
			Date:       time.Date(2026, time.June, 1+i, 0, 0, 0, 0, time.UTC),
			Status:     status,
		})
	}
	return out
}

func TestMonthlyPerformanceCurrentMonthUsesToday(t *testing.T) {
	employees := []employee.Employee{{ID: "e1", Code: "EMP-001", Name: "Ayu"}}
	svc := newTestService(employees, dayRecords("e1", attendance.StatusPresent, 9))

	resp, err := svc.MonthlyPerformance(context.Background(), 2026, time.June)
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)

	assert.Equal(t, 2026, resp.Year)
	assert.Equal(t, 6, resp.Month)
	assert.Equal(t, 10, resp.Rows[0].WorkingDays)
	assert.Equal(t, 90, resp.Rows[0].Percentage)
}

func TestMonthlyPerformancePastMonthUsesLastDay(t *testing.T) {
	employees := []employee.Employee{{ID: "e1", Code: "EMP-001", Name: "Ayu"}}
	svc := newTestService(employees, nil)

	// May 2026 has 21 working days; the reference is May 31st even
	// though "today" is in June.
	resp, err := svc.MonthlyPerformance(context.Background(), 2026, time.May)
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)

	assert.Equal(t, 21, resp.Rows[0].WorkingDays)
	assert.Equal(t, 21, resp.Rows[0].Absent)
	assert.Equal(t, 0, resp.Rows[0].Percentage)
}

func TestMonthlyPerformanceRejectsFutureMonth(t *testing.T) {
	employees := []employee.Employee{{ID: "e1", Code: "EMP-001", Name: "Ayu"}}
	svc := newTestService(employees, nil)

	_, err := svc.MonthlyPerformance(context.Background(), 2026, time.July)
	assert.ErrorIs(t, err, report.ErrFutureMonth)

	_, err = svc.MonthlyPerformance(context.Background(), 2027, time.January)
	assert.ErrorIs(t, err, report.ErrFutureMonth)

	_, err = svc.ExportCSV(context.Background(), 2026, time.July)
	assert.ErrorIs(t, err, report.ErrFutureMonth)

	_, err = svc.EmployeeMonth(context.Background(), "e1", 2026, time.July)
	assert.ErrorIs(t, err, report.ErrFutureMonth)
}

func TestExportCSV(t *testing.T) {
	employees := []employee.Employee{
		{ID: "e1", Code: "EMP-001", Name: "Ayu"},
		{ID: "e2", Code: "EMP-002", Name: "Budi"},
	}
	records := append(
		dayRecords("e1", attendance.StatusPresent, 9),
		dayRecords("e2", attendance.StatusHalfDay, 4)...,
	)
	svc := newTestService(employees, records)

	data, err := svc.ExportCSV(context.Background(), 2026, time.June)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"code", "name", "working_days", "present", "late", "half_day", "absent", "effective_score", "percentage"}, rows[0])
	// Sorted by percentage descending.
	assert.Equal(t, "EMP-001", rows[1][0])
	assert.Equal(t, []string{"EMP-002", "Budi", "10", "0", "0", "4", "6", "2.0", "20"}, rows[2])
}

func TestEmployeeMonth(t *testing.T) {
	employees := []employee.Employee{{ID: "e1", Code: "EMP-001", Name: "Ayu"}}
	records := append(
		dayRecords("e1", attendance.StatusLate, 2),
		dayRecords("ghost", attendance.StatusPresent, 3)...,
	)
	svc := newTestService(employees, records)

	resp, err := svc.EmployeeMonth(context.Background(), "e1", 2026, time.June)
	require.NoError(t, err)

	assert.Equal(t, "e1", resp.Summary.EmployeeID)
	assert.Equal(t, 2, resp.Summary.Late)
	assert.Len(t, resp.Records, 2)
}

func TestEmployeeMonthUnknownEmployee(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.EmployeeMonth(context.Background(), "missing", 2026, time.June)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
