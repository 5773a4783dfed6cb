package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/attendance"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/dashboard"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/employee"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/ai"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/sse"
)

type Service struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	insight        ai.Insight
	hub            *sse.Hub
	now            func() time.Time
}

func NewDashboardService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	insight ai.Insight,
	hub *sse.Hub,
) *Service {
	return &Service{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		insight:        insight,
		hub:            hub,
		now:            time.Now,
	}
}

// Overview implements dashboard.DashboardService. The insight text is
// cosmetic; its failure only logs.
func (s *Service) Overview(ctx context.Context) (dashboard.OverviewResponse, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	total, err := s.employeeRepo.CountActive(ctx)
	if err != nil {
		return dashboard.OverviewResponse{}, err
	}

	counts, err := s.attendanceRepo.CountByStatusOnDate(ctx, today)
	if err != nil {
		return dashboard.OverviewResponse{}, err
	}

	present := counts[attendance.StatusPresent]
	late := counts[attendance.StatusLate]
	halfDay := counts[attendance.StatusHalfDay]

	absentSoFar := int(total) - present - late - halfDay
	if absentSoFar < 0 {
		absentSoFar = 0
	}

	resp := dashboard.OverviewResponse{
		Date:           today.Format(time.DateOnly),
		TotalEmployees: total,
		Present:        present,
		Late:           late,
		HalfDay:        halfDay,
		AbsentSoFar:    absentSoFar,
		ChannelState:   string(s.hub.TopicState(sse.TopicAttendance)),
	}

	insightCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if text, err := s.insight.Summarize(insightCtx, present, late, absentSoFar); err != nil {
		slog.Warn("dashboard insight unavailable", "error", err)
	} else {
		resp.Insight = text
	}

	return resp, nil
}
