package settings

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/audit"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/settings"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/besteffort"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/sse"
)

type Service struct {
	settingsRepo settings.SettingsRepository
	auditRepo    audit.AuditRepository
	hub          *sse.Hub

	// Rules change rarely and gate every punch; cache the active row
	// briefly to keep punches off the settings table.
	mu       sync.RWMutex
	cached   *settings.AppSettings
	cachedAt time.Time
}

const cacheTTL = 30 * time.Second

func NewSettingsService(settingsRepo settings.SettingsRepository, auditRepo audit.AuditRepository, hub *sse.Hub) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
		hub:          hub,
	}
}

// Active implements settings.SettingsService.
func (s *Service) Active(ctx context.Context) (settings.AppSettings, error) {
	s.mu.RLock()
	if s.cached != nil && time.Since(s.cachedAt) < cacheTTL {
		cached := *s.cached
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			// No deploy yet; run on defaults.
			return settings.Defaults(), nil
		}
		return settings.AppSettings{}, err
	}

	s.mu.Lock()
	s.cached = &current
	s.cachedAt = time.Now()
	s.mu.Unlock()

	return current, nil
}

// Get implements settings.SettingsService.
func (s *Service) Get(ctx context.Context) (settings.SettingsResponse, error) {
	current, err := s.Active(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.ToResponse(current), nil
}

// Deploy implements settings.SettingsService. The whole rule set is
// replaced at once; partial updates are not offered so readers never
// see a mixed rule set.
func (s *Service) Deploy(ctx context.Context, req settings.DeployRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	next := settings.AppSettings{
		AttendanceWindowStart: req.AttendanceWindowStart,
		LateThresholdMinutes:  req.LateThresholdMinutes,
		LocationMandatory:     req.LocationMandatory,
		PhotoMandatory:        req.PhotoMandatory,
		DeviceBinding:         req.DeviceBinding,
		OfficeLatitude:        req.OfficeLatitude,
		OfficeLongitude:       req.OfficeLongitude,
		OfficeRadiusM:         req.OfficeRadiusM,
		UpdatedBy:             &req.ActorID,
	}

	saved, err := s.settingsRepo.Save(ctx, next)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	s.mu.Lock()
	s.cached = &saved
	s.cachedAt = time.Now()
	s.mu.Unlock()

	besteffort.Go(3*time.Second, "audit:settings.deploy", func(ctx context.Context) error {
		return s.auditRepo.Append(ctx, audit.Entry{
			ActorID:  req.ActorID,
			Action:   audit.ActionSettingsDeploy,
			Entity:   "app_settings",
			EntityID: "1",
			Changes: map[string]interface{}{
				"attendance_window_start": req.AttendanceWindowStart,
				"late_threshold_minutes":  req.LateThresholdMinutes,
				"location_mandatory":      req.LocationMandatory,
				"photo_mandatory":         req.PhotoMandatory,
				"device_binding":          req.DeviceBinding,
			},
		})
	})

	s.hub.Publish(sse.TopicSettings, sse.Event{Event: "deployed", Data: nil})

	return settings.ToResponse(saved), nil
}
