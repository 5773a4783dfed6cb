package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/attendance"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.punch_in, a.punch_out, a.worked_minutes,
	a.latitude, a.longitude, a.photo_url, a.status,
	a.edited_by, a.edit_reason, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.PunchIn, &att.PunchOut, &att.WorkedMinutes,
		&att.Latitude, &att.Longitude, &att.PhotoURL, &att.Status,
		&att.EditedBy, &att.EditReason, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository. The unique index
// on (employee_id, date) is the second line of defense against a
// double punch-in; its violation maps to ErrAlreadyPunchedIn.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, punch_in, punch_out, worked_minutes,
			latitude, longitude, photo_url, status, edited_by, edit_reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.PunchIn,
		newAttendance.PunchOut,
		newAttendance.WorkedMinutes,
		newAttendance.Latitude,
		newAttendance.Longitude,
		newAttendance.PhotoURL,
		newAttendance.Status,
		newAttendance.EditedBy,
		newAttendance.EditReason,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyPunchedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `, e.name, e.code
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id).Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.PunchIn, &att.PunchOut, &att.WorkedMinutes,
		&att.Latitude, &att.Longitude, &att.PhotoURL, &att.Status,
		&att.EditedBy, &att.EditReason, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.EmployeeCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No record for this day
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET punch_out = $2, worked_minutes = $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, att.ID, att.PunchOut, att.WorkedMinutes, att.Status)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// UpdateGuarded implements attendance.AttendanceRepository. The WHERE
// clause compares updated_at so a concurrent edit surfaces as
// ErrEditConflict instead of silently winning.
func (a *attendanceRepository) UpdateGuarded(ctx context.Context, att attendance.Attendance, expectedUpdatedAt time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET punch_in = $2, punch_out = $3, worked_minutes = $4, status = $5,
			edited_by = $6, edit_reason = $7, updated_at = NOW()
		WHERE id = $1 AND updated_at = $8
		RETURNING id, employee_id, date, punch_in, punch_out, worked_minutes,
			latitude, longitude, photo_url, status,
			edited_by, edit_reason, created_at, updated_at
	`

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		att.ID, att.PunchIn, att.PunchOut, att.WorkedMinutes, att.Status,
		att.EditedBy, att.EditReason, expectedUpdatedAt,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			// Row exists but updated_at moved, or the row is gone.
			if _, getErr := a.GetByID(ctx, att.ID); getErr != nil {
				return attendance.Attendance{}, getErr
			}
			return attendance.Attendance{}, attendance.ErrEditConflict
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return updated, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argPos))
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argPos))
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argPos))
		args = append(args, *filter.DateTo)
		argPos++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := `
		SELECT ` + attendanceColumns + `, e.name, e.code
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE ` + where + `
		ORDER BY a.date DESC, e.name ASC
		LIMIT $` + fmt.Sprint(argPos) + ` OFFSET $` + fmt.Sprint(argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.PunchIn, &att.PunchOut, &att.WorkedMinutes,
			&att.Latitude, &att.Longitude, &att.PhotoURL, &att.Status,
			&att.EditedBy, &att.EditReason, &att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName, &att.EmployeeCode,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}

	return result, total, rows.Err()
}

// ListByMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByMonth(ctx context.Context, year int, month time.Month) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE date_trunc('month', a.date) = make_date($1, $2, 1)
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list month attendances: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListByEmployeeMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND date_trunc('month', a.date) = make_date($2, $3, 1)
		ORDER BY a.date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list employee month attendances: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, day time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.punch_in IS NOT NULL
		  AND a.punch_out IS NULL
		  AND a.date < $1
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendances: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// CountByStatusOnDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountByStatusOnDate(ctx context.Context, date time.Time) (map[attendance.Status]int, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT status, COUNT(*)
		FROM attendances
		WHERE date = $1
		GROUP BY status
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendances by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[attendance.Status]int)
	for rows.Next() {
		var status attendance.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	return result, rows.Err()
}
