package settings

import "context"

// SettingsRepository persists the singleton rule row.
type SettingsRepository interface {
	// Get retrieves the current rules; ErrSettingsNotFound before the
	// first deploy
	Get(ctx context.Context) (AppSettings, error)

	// Save upserts the singleton row
	Save(ctx context.Context, s AppSettings) (AppSettings, error)
}
