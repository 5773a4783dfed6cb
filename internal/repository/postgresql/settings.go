package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/settings"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get implements settings.SettingsRepository. The table holds at most
// one row, keyed by a constant id.
func (r *settingsRepository) Get(ctx context.Context) (settings.AppSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT attendance_window_start, late_threshold_minutes,
			   location_mandatory, photo_mandatory, device_binding,
			   office_latitude, office_longitude, office_radius_m,
			   updated_at, updated_by
		FROM app_settings
		WHERE id = 1
	`

	var s settings.AppSettings
	err := q.QueryRow(ctx, query).Scan(
		&s.AttendanceWindowStart, &s.LateThresholdMinutes,
		&s.LocationMandatory, &s.PhotoMandatory, &s.DeviceBinding,
		&s.OfficeLatitude, &s.OfficeLongitude, &s.OfficeRadiusM,
		&s.UpdatedAt, &s.UpdatedBy,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return settings.AppSettings{}, settings.ErrSettingsNotFound
		}
		return settings.AppSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return s, nil
}

// Save implements settings.SettingsRepository.
func (r *settingsRepository) Save(ctx context.Context, s settings.AppSettings) (settings.AppSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO app_settings (
			id, attendance_window_start, late_threshold_minutes,
			location_mandatory, photo_mandatory, device_binding,
			office_latitude, office_longitude, office_radius_m, updated_by
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			attendance_window_start = EXCLUDED.attendance_window_start,
			late_threshold_minutes = EXCLUDED.late_threshold_minutes,
			location_mandatory = EXCLUDED.location_mandatory,
			photo_mandatory = EXCLUDED.photo_mandatory,
			device_binding = EXCLUDED.device_binding,
			office_latitude = EXCLUDED.office_latitude,
			office_longitude = EXCLUDED.office_longitude,
			office_radius_m = EXCLUDED.office_radius_m,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		s.AttendanceWindowStart, s.LateThresholdMinutes,
		s.LocationMandatory, s.PhotoMandatory, s.DeviceBinding,
		s.OfficeLatitude, s.OfficeLongitude, s.OfficeRadiusM, s.UpdatedBy,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return settings.AppSettings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	return s, nil
}
