package user

import (
	"context"
	"time"
)

// UserRepository defines data access methods for auth identities.
type UserRepository interface {
	// Create creates a new user row
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (User, error)

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	// SetResetToken stores a single-use password reset token
	SetResetToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error

	// GetByResetToken finds the user owning a still-valid reset token
	GetByResetToken(ctx context.Context, tokenHash string) (User, error)

	// ClearResetToken invalidates the user's reset token
	ClearResetToken(ctx context.Context, userID string) error
}
