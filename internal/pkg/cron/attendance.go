package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/attendance"
)

// AttendanceJobs closes punches left open across midnight so "at most
// one open record per employee" stays true from day to day.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_open_punches", 1*time.Hour, j.AutoCloseOpenPunches)
}

// AutoCloseOpenPunches closes open records from previous days. The
// status set at punch-in is preserved; worked minutes run to the
// standard shift end (8 hours after punch-in, capped at the day's
// midnight).
func (j *AttendanceJobs) AutoCloseOpenPunches(ctx context.Context) error {
	today := time.Now()
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	open, err := j.attendanceRepo.ListOpenBefore(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to list open punches: %w", err)
	}
	if len(open) == 0 {
		return nil
	}

	slog.Info("Cron: closing stale open punches", "count", len(open))

	closedCount := 0
	for _, record := range open {
		punchOut := record.PunchIn.Add(8 * time.Hour)
		midnight := record.Date.AddDate(0, 0, 1)
		if punchOut.After(midnight) {
			punchOut = midnight
		}

		worked := attendance.WorkedMinutes(*record.PunchIn, punchOut)
		record.PunchOut = &punchOut
		record.WorkedMinutes = &worked

		if err := j.attendanceRepo.Update(ctx, record); err != nil {
			slog.Error("Cron: failed to close punch", "attendance_id", record.ID, "error", err)
			continue
		}
		closedCount++
	}

	slog.Info("Cron: auto-close finished", "closed", closedCount, "total", len(open))
	return nil
}
