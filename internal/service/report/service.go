package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/attendance"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/employee"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/report"
)

type Service struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	now            func() time.Time
}

func NewReportService(attendanceRepo attendance.AttendanceRepository, employeeRepo employee.EmployeeRepository) *Service {
	return &Service{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		now:            time.Now,
	}
}

// referenceDate picks the aggregation cutoff: today for the current
// month, the month's last day for past months. A month that has not
// started yet has no working days to count, so it is rejected rather
// than reported as all-absent.
func (s *Service) referenceDate(year int, month time.Month) (time.Time, error) {
	now := s.now()
	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	if now.Before(first) {
		return time.Time{}, report.ErrFutureMonth
	}
	if now.Year() == year && now.Month() == month {
		return now, nil
	}
	// Last day of the requested month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, now.Location()), nil
}

// MonthlyPerformance implements report.ReportService.
func (s *Service) MonthlyPerformance(ctx context.Context, year int, month time.Month) (report.MonthlyPerformanceResponse, error) {
	ref, err := s.referenceDate(year, month)
	if err != nil {
		return report.MonthlyPerformanceResponse{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return report.MonthlyPerformanceResponse{}, fmt.Errorf("failed to load employees: %w", err)
	}

	records, err := s.attendanceRepo.ListByMonth(ctx, year, month)
	if err != nil {
		return report.MonthlyPerformanceResponse{}, fmt.Errorf("failed to load month records: %w", err)
	}

	rows := report.Aggregate(employees, records, ref)

	return report.MonthlyPerformanceResponse{
		Year:  year,
		Month: int(month),
		Rows:  rows,
	}, nil
}

// ExportCSV implements report.ReportService.
func (s *Service) ExportCSV(ctx context.Context, year int, month time.Month) ([]byte, error) {
	perf, err := s.MonthlyPerformance(ctx, year, month)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"code", "name", "working_days", "present", "late", "half_day", "absent", "effective_score", "percentage"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range perf.Rows {
		record := []string{
			row.EmployeeCode,
			row.EmployeeName,
			strconv.Itoa(row.WorkingDays),
			strconv.Itoa(row.Present),
			strconv.Itoa(row.Late),
			strconv.Itoa(row.HalfDay),
			strconv.Itoa(row.Absent),
			strconv.FormatFloat(row.EffectiveScore, 'f', 1, 64),
			strconv.Itoa(row.Percentage),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

// EmployeeMonth implements report.ReportService.
func (s *Service) EmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) (report.EmployeeMonthResponse, error) {
	ref, err := s.referenceDate(year, month)
	if err != nil {
		return report.EmployeeMonthResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return report.EmployeeMonthResponse{}, err
	}

	records, err := s.attendanceRepo.ListByEmployeeMonth(ctx, employeeID, year, month)
	if err != nil {
		return report.EmployeeMonthResponse{}, fmt.Errorf("failed to load employee month: %w", err)
	}

	rows := report.Aggregate([]employee.Employee{emp}, records, ref)

	resp := report.EmployeeMonthResponse{
		Year:    year,
		Month:   int(month),
		Summary: rows[0],
		Records: make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, attendance.ToResponse(rec))
	}

	return resp, nil
}
