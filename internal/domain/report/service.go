package report

import (
	"context"
	"time"
)

// ReportService defines business logic for monthly performance.
type ReportService interface {
	// MonthlyPerformance aggregates every active employee's month.
	// For the current month the reference date is today; for past
	// months it is the last day of that month.
	MonthlyPerformance(ctx context.Context, year int, month time.Month) (MonthlyPerformanceResponse, error)

	// ExportCSV renders the monthly performance table as CSV
	ExportCSV(ctx context.Context, year int, month time.Month) ([]byte, error)

	// EmployeeMonth returns one employee's summary and day records
	EmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) (EmployeeMonthResponse, error)
}
