package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/employee"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, user_id, code, name, email, mobile, position, department,
	status, join_date, created_at, updated_at`

// Create implements employee.EmployeeRepository. Unique violations on
// code, email and mobile are mapped to friendly conflict errors by
// constraint name.
func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (user_id, code, name, email, mobile, position, department, status, join_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.UserID, e.Code, e.Name, e.Email, e.Mobile, e.Position, e.Department, e.Status, e.JoinDate,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch {
			case strings.Contains(pgErr.ConstraintName, "code"):
				return employee.Employee{}, employee.ErrEmployeeCodeExists
			case strings.Contains(pgErr.ConstraintName, "mobile"):
				return employee.Employee{}, employee.ErrMobileExists
			default:
				return employee.Employee{}, employee.ErrEmailExists
			}
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return r.scanEmployee(q.QueryRow(ctx, query, id))
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = $1`
	return r.scanEmployee(q.QueryRow(ctx, query, userID))
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET name = $2, mobile = $3, position = $4, department = $5, status = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, e.ID, e.Name, e.Mobile, e.Position, e.Department, e.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "mobile") {
			return employee.ErrMobileExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.EmployeeRepository. Only the profile row
// is removed; the auth identity in users stays.
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d OR email ILIKE $%d)", argPos, argPos, argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}
	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argPos))
		args = append(args, filter.Department)
		argPos++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + where +
		` ORDER BY name ASC LIMIT $` + fmt.Sprint(argPos) + ` OFFSET $` + fmt.Sprint(argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	result, err := r.collectEmployees(rows)
	return result, total, err
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE status = 'active' ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	return r.collectEmployees(rows)
}

// CountActive implements employee.EmployeeRepository.
func (r *employeeRepository) CountActive(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE status = 'active'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}

	return count, nil
}

func (r *employeeRepository) scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.Code, &e.Name, &e.Email, &e.Mobile, &e.Position, &e.Department,
		&e.Status, &e.JoinDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var result []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Code, &e.Name, &e.Email, &e.Mobile, &e.Position, &e.Department,
			&e.Status, &e.JoinDate, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
