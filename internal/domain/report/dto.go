package report

import (
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/attendance"
)

type MonthlyPerformanceResponse struct {
	Year  int              `json:"year"`
	Month int              `json:"month"`
	Rows  []PerformanceRow `json:"rows"`
}

// EmployeeMonthResponse is one employee's month in detail, records
// newest first.
type EmployeeMonthResponse struct {
	Year    int                             `json:"year"`
	Month   int                             `json:"month"`
	Summary PerformanceRow                  `json:"summary"`
	Records []attendance.AttendanceResponse `json:"records"`
}
