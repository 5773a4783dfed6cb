package attendance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kitabonkesaar/attendance-app-saas/internal/config"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/attendance"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/audit"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/settings"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/ai"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/besteffort"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/sse"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/storage"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/timeout"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/utils"
)

type Service struct {
	attendanceRepo attendance.AttendanceRepository
	settingsSvc    settings.SettingsService
	auditRepo      audit.AuditRepository
	fileStorage    storage.FileStorage
	photoValidator ai.PhotoValidator
	hub            *sse.Hub
	timeouts       config.TimeoutConfig
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	settingsSvc settings.SettingsService,
	auditRepo audit.AuditRepository,
	fileStorage storage.FileStorage,
	photoValidator ai.PhotoValidator,
	hub *sse.Hub,
	timeouts config.TimeoutConfig,
) *Service {
	return &Service{
		attendanceRepo: attendanceRepo,
		settingsSvc:    settingsSvc,
		auditRepo:      auditRepo,
		fileStorage:    fileStorage,
		photoValidator: photoValidator,
		hub:            hub,
		timeouts:       timeouts,
		now:            time.Now,
	}
}

// localDay truncates t to its local calendar day.
func localDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// PunchIn implements attendance.AttendanceService.
func (s *Service) PunchIn(ctx context.Context, req attendance.PunchInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rules, err := s.settingsSvc.Active(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load attendance rules: %w", err)
	}

	now := s.now()
	today := localDay(now)

	// Pre-check; the unique index on (employee_id, date) catches the
	// race two concurrent punch-ins can still win.
	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedIn
	}

	if rules.LocationMandatory {
		distance := utils.CalculateHaversineDistance(
			req.Latitude, req.Longitude,
			rules.OfficeLatitude, rules.OfficeLongitude,
		)
		if distance > rules.OfficeRadiusM {
			slog.Info("punch-in outside geofence",
				"employee_id", req.EmployeeID,
				"distance_m", int(distance),
				"radius_m", int(rules.OfficeRadiusM),
			)
			return attendance.AttendanceResponse{}, attendance.ErrOutsideAllowedRadius
		}
	}

	var photoURL *string
	if req.FileHeader != nil {
		url, err := s.storeAndValidatePhoto(ctx, req)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		photoURL = &url
	} else if rules.PhotoMandatory {
		return attendance.AttendanceResponse{}, attendance.ErrPhotoRequired
	}

	status := attendance.Classify(now, rules.AttendanceWindowStart, rules.LateThresholdMinutes)

	record := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       today,
		PunchIn:    &now,
		Latitude:   &req.Latitude,
		Longitude:  &req.Longitude,
		PhotoURL:   photoURL,
		Status:     status,
	}

	created, err := timeout.RunValue(ctx, s.timeouts.Save, func(ctx context.Context) (attendance.Attendance, error) {
		return s.attendanceRepo.Create(ctx, record)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.hub.Publish(sse.TopicAttendance, sse.Event{Event: "punch_in", Data: created.ID})

	return attendance.ToResponse(created), nil
}

// storeAndValidatePhoto uploads the punch photo and runs the AI gate.
// A negative verdict is a structured rejection, not an internal error.
func (s *Service) storeAndValidatePhoto(ctx context.Context, req attendance.PunchInRequest) (string, error) {
	image, err := io.ReadAll(io.LimitReader(req.File, 10<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read punch photo: %w", err)
	}

	contentType := req.FileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	verdict, err := s.photoValidator.Analyze(ctx, image, contentType)
	if err != nil {
		// The validator being down must not block punching in.
		slog.Warn("photo validation unavailable, accepting photo", "error", err)
	} else if !verdict.IsValid {
		return "", fmt.Errorf("%w: %s", attendance.ErrPhotoRejected, verdict.Reason)
	}

	key := fmt.Sprintf("punches/%s/%s%s",
		req.EmployeeID,
		uuid.NewString(),
		extensionFor(contentType),
	)
	path, err := s.fileStorage.Upload(ctx, bytes.NewReader(image), key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store punch photo: %w", err)
	}

	url, err := s.fileStorage.GetURL(ctx, path, 0)
	if err != nil {
		return "", fmt.Errorf("failed to resolve photo url: %w", err)
	}

	return url, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}

// PunchOut implements attendance.AttendanceService.
func (s *Service) PunchOut(ctx context.Context, req attendance.PunchOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := localDay(now)

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record == nil || record.PunchIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotPunchedIn
	}
	if record.PunchOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedOut
	}

	worked := attendance.WorkedMinutes(*record.PunchIn, now)
	record.PunchOut = &now
	record.WorkedMinutes = &worked

	err = timeout.Run(ctx, s.timeouts.Save, func(ctx context.Context) error {
		return s.attendanceRepo.Update(ctx, *record)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.hub.Publish(sse.TopicAttendance, sse.Event{Event: "punch_out", Data: record.ID})

	updated, err := s.attendanceRepo.GetByID(ctx, record.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(updated), nil
}

// Today implements attendance.AttendanceService.
func (s *Service) Today(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, localDay(s.now()))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	resp := attendance.ToResponse(*record)
	return &resp, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *Service) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.EmployeeID = employeeID
	return s.List(ctx, filter)
}

// List implements attendance.AttendanceService.
func (s *Service) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.Normalize()

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	resp := attendance.ListAttendanceResponse{
		Attendances: make([]attendance.AttendanceResponse, 0, len(records)),
		Total:       total,
		Page:        filter.Page,
		Limit:       filter.Limit,
	}
	for _, rec := range records {
		resp.Attendances = append(resp.Attendances, attendance.ToResponse(rec))
	}

	return resp, nil
}

// Get implements attendance.AttendanceService.
func (s *Service) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(record), nil
}

// Update implements attendance.AttendanceService. The reason check
// happens in Validate, before any repository call; the updated_at
// guard turns a lost race into ErrEditConflict.
func (s *Service) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	expectedUpdatedAt, _ := time.Parse(time.RFC3339Nano, req.ExpectedUpdatedAt)

	changes := map[string]interface{}{"reason": req.Reason}

	if req.Status != nil {
		changes["status"] = map[string]string{"from": string(record.Status), "to": *req.Status}
		record.Status = attendance.Status(*req.Status)
	}
	if req.PunchIn != nil {
		t, _ := time.Parse(time.RFC3339, *req.PunchIn)
		changes["punch_in"] = *req.PunchIn
		record.PunchIn = &t
	}
	if req.PunchOut != nil {
		t, _ := time.Parse(time.RFC3339, *req.PunchOut)
		changes["punch_out"] = *req.PunchOut
		record.PunchOut = &t
	}
	if record.PunchIn != nil && record.PunchOut != nil {
		worked := attendance.WorkedMinutes(*record.PunchIn, *record.PunchOut)
		record.WorkedMinutes = &worked
	}

	record.EditedBy = &req.EditedBy
	record.EditReason = &req.Reason

	updated, err := timeout.RunValue(ctx, s.timeouts.Save, func(ctx context.Context) (attendance.Attendance, error) {
		return s.attendanceRepo.UpdateGuarded(ctx, record, expectedUpdatedAt)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.audit(req.EditedBy, audit.ActionAttendanceUpdate, updated.ID, changes)
	s.hub.Publish(sse.TopicAttendance, sse.Event{Event: "corrected", Data: updated.ID})

	return attendance.ToResponse(updated), nil
}

// CreateManual implements attendance.AttendanceService.
func (s *Service) CreateManual(ctx context.Context, req attendance.CreateManualRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.Parse(time.DateOnly, req.Date)

	record := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     attendance.Status(req.Status),
		EditedBy:   &req.EditedBy,
		EditReason: &req.Reason,
	}
	if req.PunchIn != nil {
		t, _ := time.Parse(time.RFC3339, *req.PunchIn)
		record.PunchIn = &t
	}
	if req.PunchOut != nil {
		t, _ := time.Parse(time.RFC3339, *req.PunchOut)
		record.PunchOut = &t
	}
	if record.PunchIn != nil && record.PunchOut != nil {
		worked := attendance.WorkedMinutes(*record.PunchIn, *record.PunchOut)
		record.WorkedMinutes = &worked
	}

	created, err := timeout.RunValue(ctx, s.timeouts.Save, func(ctx context.Context) (attendance.Attendance, error) {
		return s.attendanceRepo.Create(ctx, record)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.audit(req.EditedBy, audit.ActionAttendanceCreate, created.ID, map[string]interface{}{
		"employee_id": req.EmployeeID,
		"date":        req.Date,
		"status":      req.Status,
		"reason":      req.Reason,
	})
	s.hub.Publish(sse.TopicAttendance, sse.Event{Event: "manual_entry", Data: created.ID})

	return attendance.ToResponse(created), nil
}

// Delete implements attendance.AttendanceService.
func (s *Service) Delete(ctx context.Context, id string, actorID string) error {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit(actorID, audit.ActionAttendanceDelete, id, map[string]interface{}{
		"employee_id": record.EmployeeID,
		"date":        record.Date.Format(time.DateOnly),
	})
	s.hub.Publish(sse.TopicAttendance, sse.Event{Event: "deleted", Data: id})

	return nil
}

func (s *Service) audit(actorID, action, entityID string, changes map[string]interface{}) {
	besteffort.Go(3*time.Second, "audit:"+action, func(ctx context.Context) error {
		return s.auditRepo.Append(ctx, audit.Entry{
			ActorID:  actorID,
			Action:   action,
			Entity:   "attendance",
			EntityID: entityID,
			Changes:  changes,
		})
	})
}
