package settings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/audit"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/settings"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/sse"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/validator"
)

type memSettingsRepo struct {
	mu    sync.Mutex
	saved *settings.AppSettings
	gets  int
}

func (r *memSettingsRepo) Get(ctx context.Context) (settings.AppSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	if r.saved == nil {
		return settings.AppSettings{}, settings.ErrSettingsNotFound
	}
	return *r.saved, nil
}

func (r *memSettingsRepo) Save(ctx context.Context, s settings.AppSettings) (settings.AppSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.UpdatedAt = time.Now()
	r.saved = &s
	return s, nil
}

type noopAuditRepo struct{}

func (noopAuditRepo) Append(ctx context.Context, e audit.Entry) error { return nil }
func (noopAuditRepo) ListByEntity(ctx context.Context, entity, entityID string, limit int) ([]audit.Entry, error) {
	return nil, nil
}

func deployRequest() settings.DeployRequest {
	return settings.DeployRequest{
		ActorID:               "admin-1",
		AttendanceWindowStart: "08:30",
		LateThresholdMinutes:  10,
		LocationMandatory:     true,
		PhotoMandatory:        true,
		OfficeLatitude:        -6.2,
		OfficeLongitude:       106.8,
		OfficeRadiusM:         150,
	}
}

func TestActiveFallsBackToDefaults(t *testing.T) {
	svc := NewSettingsService(&memSettingsRepo{}, noopAuditRepo{}, sse.NewHub(true))

	rules, err := svc.Active(context.Background())
	require.NoError(t, err)

	assert.Equal(t, settings.Defaults(), rules)
}

func TestDeployReplacesRuleSet(t *testing.T) {
	repo := &memSettingsRepo{}
	svc := NewSettingsService(repo, noopAuditRepo{}, sse.NewHub(true))

	resp, err := svc.Deploy(context.Background(), deployRequest())
	require.NoError(t, err)

	assert.Equal(t, "08:30", resp.AttendanceWindowStart)
	assert.True(t, resp.LocationMandatory)
	assert.Equal(t, 150.0, resp.OfficeRadiusM)

	rules, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "08:30", rules.AttendanceWindowStart)
	require.NotNil(t, rules.UpdatedBy)
	assert.Equal(t, "admin-1", *rules.UpdatedBy)
}

func TestDeployValidation(t *testing.T) {
	svc := NewSettingsService(&memSettingsRepo{}, noopAuditRepo{}, sse.NewHub(true))

	bad := deployRequest()
	bad.AttendanceWindowStart = "25:00"
	_, err := svc.Deploy(context.Background(), bad)
	require.Error(t, err)

	errs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	_, present := errs.ToMap()["attendance_window_start"]
	assert.True(t, present)

	// Geo fields only matter when location is mandatory.
	loose := deployRequest()
	loose.LocationMandatory = false
	loose.OfficeRadiusM = 0
	_, err = svc.Deploy(context.Background(), loose)
	assert.NoError(t, err)
}

func TestActiveUsesCache(t *testing.T) {
	repo := &memSettingsRepo{}
	svc := NewSettingsService(repo, noopAuditRepo{}, sse.NewHub(true))

	_, err := svc.Deploy(context.Background(), deployRequest())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := svc.Active(context.Background())
		require.NoError(t, err)
	}

	// Deploy primed the cache; no repository read happened at all.
	assert.Equal(t, 0, repo.gets)
}

func TestDeployPublishesEvent(t *testing.T) {
	hub := sse.NewHub(true)
	svc := NewSettingsService(&memSettingsRepo{}, noopAuditRepo{}, hub)

	events, cleanup := hub.Subscribe(sse.TopicSettings)
	defer cleanup()

	_, err := svc.Deploy(context.Background(), deployRequest())
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, "deployed", event.Event)
	case <-time.After(time.Second):
		t.Fatal("expected a deployed event")
	}
}
