package settings

import "context"

// SettingsService defines business logic for attendance rules.
type SettingsService interface {
	// Get returns the active rules, falling back to defaults before
	// the first deploy
	Get(ctx context.Context) (SettingsResponse, error)

	// Active returns the entity form for other services
	Active(ctx context.Context) (AppSettings, error)

	// Deploy replaces the whole rule set (admin only, audited)
	Deploy(ctx context.Context, req DeployRequest) (SettingsResponse, error)
}
