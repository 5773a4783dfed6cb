package report

import (
	"math"
	"sort"
	"time"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/attendance"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/employee"
)

// PerformanceRow is one employee's aggregated month.
type PerformanceRow struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeCode   string  `json:"employee_code"`
	EmployeeName   string  `json:"employee_name"`
	WorkingDays    int     `json:"working_days"`
	Present        int     `json:"present"`
	Late           int     `json:"late"`
	HalfDay        int     `json:"half_day"`
	Absent         int     `json:"absent"`
	EffectiveScore float64 `json:"effective_score"`
	Percentage     int     `json:"percentage"`
}

// WorkingDays counts Monday through Friday from the first of ref's
// month through ref itself, inclusive. No holiday calendar is applied.
func WorkingDays(ref time.Time) int {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	days := 0
	for d := first; !d.After(ref); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}

// Aggregate folds a month of records into one row per employee.
// Late days count fully toward the score, half days count 0.5, and
// absences are derived from working days not covered by any record.
// The result is sorted by descending percentage; ties keep the input
// employee order.
func Aggregate(employees []employee.Employee, records []attendance.Attendance, ref time.Time) []PerformanceRow {
	workingDays := WorkingDays(ref)

	type counts struct {
		present int
		late    int
		halfDay int
	}
	byEmployee := make(map[string]*counts, len(employees))
	for _, e := range employees {
		byEmployee[e.ID] = &counts{}
	}

	for _, rec := range records {
		c, ok := byEmployee[rec.EmployeeID]
		if !ok {
			// Record for a deleted or inactive employee; skip.
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent:
			c.present++
		case attendance.StatusLate:
			c.late++
		case attendance.StatusHalfDay:
			c.halfDay++
		}
	}

	rows := make([]PerformanceRow, 0, len(employees))
	for _, e := range employees {
		c := byEmployee[e.ID]

		attended := c.present + c.late + c.halfDay
		absent := workingDays - attended
		if absent < 0 {
			absent = 0
		}

		score := float64(c.present) + float64(c.late) + 0.5*float64(c.halfDay)

		percentage := 100
		if workingDays > 0 {
			percentage = int(math.Round(100 * score / float64(workingDays)))
			if percentage > 100 {
				percentage = 100
			}
		}

		rows = append(rows, PerformanceRow{
			EmployeeID:     e.ID,
			EmployeeCode:   e.Code,
			EmployeeName:   e.Name,
			WorkingDays:    workingDays,
			Present:        c.present,
			Late:           c.late,
			HalfDay:        c.halfDay,
			Absent:         absent,
			EffectiveScore: score,
			Percentage:     percentage,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Percentage > rows[j].Percentage
	})

	return rows
}
