package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/user"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, name, password_hash, role, oauth_provider, oauth_provider_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.Email, u.Name, u.PasswordHash, u.Role, u.OAuthProvider, u.OAuthProviderID,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.email, u.name, u.password_hash, u.role,
			   u.oauth_provider, u.oauth_provider_id, u.created_at, u.updated_at,
			   e.id
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id
		WHERE u.id = $1
	`

	return r.scanUser(q.QueryRow(ctx, query, id))
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.email, u.name, u.password_hash, u.role,
			   u.oauth_provider, u.oauth_provider_id, u.created_at, u.updated_at,
			   e.id
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id
		WHERE LOWER(u.email) = LOWER($1)
	`

	return r.scanUser(q.QueryRow(ctx, query, email))
}

// UpdatePassword implements user.UserRepository.
func (r *userRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// SetResetToken implements user.UserRepository.
func (r *userRepository) SetResetToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE users
		SET reset_token_hash = $2, reset_token_expires_at = $3, updated_at = NOW()
		WHERE id = $1
	`, userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// GetByResetToken implements user.UserRepository.
func (r *userRepository) GetByResetToken(ctx context.Context, tokenHash string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.email, u.name, u.password_hash, u.role,
			   u.oauth_provider, u.oauth_provider_id, u.created_at, u.updated_at,
			   e.id
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id
		WHERE u.reset_token_hash = $1
		  AND u.reset_token_expires_at > NOW()
	`

	return r.scanUser(q.QueryRow(ctx, query, tokenHash))
}

// ClearResetToken implements user.UserRepository.
func (r *userRepository) ClearResetToken(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE users
		SET reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = NOW()
		WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}

	return nil
}

func (r *userRepository) scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.OAuthProvider, &u.OAuthProviderID, &u.CreatedAt, &u.UpdatedAt,
		&u.EmployeeID,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
