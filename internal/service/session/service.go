// Package session resolves the caller's session from verified JWT
// claims. Resolution never returns an error: a broken or slow profile
// lookup degrades to the claims themselves, and a bad token is simply
// a nil session.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kitabonkesaar/attendance-app-saas/internal/config"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/user"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/besteffort"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/jwt"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/timeout"
)

// UserSession is the resolved identity of a request. Degraded marks a
// session built from token claims alone, without a fresh profile row.
type UserSession struct {
	UserID     string     `json:"user_id"`
	Email      string     `json:"email"`
	Name       string     `json:"name,omitempty"`
	Role       user.Role  `json:"role"`
	EmployeeID *string    `json:"employee_id,omitempty"`
	Degraded   bool       `json:"degraded"`
	ResolvedAt time.Time  `json:"-"`
}

type Resolver struct {
	userRepo user.UserRepository
	jwtSvc   jwt.Service
	timeouts config.TimeoutConfig

	mu    sync.RWMutex
	cache map[string]*UserSession
}

const cacheTTL = 5 * time.Minute

func NewResolver(userRepo user.UserRepository, jwtSvc jwt.Service, timeouts config.TimeoutConfig) *Resolver {
	return &Resolver{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		timeouts: timeouts,
		cache:    make(map[string]*UserSession),
	}
}

// Resolve builds a session from verified claims. The role comes from
// the explicit role claim fixed at account creation; nothing is ever
// inferred from the email address. A nil return means logged out.
func (r *Resolver) Resolve(ctx context.Context, claims map[string]interface{}) *UserSession {
	if claims == nil {
		return nil
	}
	if t, _ := claims["type"].(string); t != "access" {
		return nil
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil
	}

	email, _ := claims["email"].(string)
	roleStr, _ := claims["role"].(string)
	if !user.ValidRole(roleStr) {
		return nil
	}

	if cached := r.fromCache(userID); cached != nil {
		return cached
	}

	// Race the profile lookup against the sync timeout; a slow or
	// failing database yields a degraded session, never an error.
	resolved, err := timeout.RunValue(ctx, r.timeouts.ProfileSync, func(ctx context.Context) (user.User, error) {
		return r.userRepo.GetByID(ctx, userID)
	})
	if err != nil {
		slog.Warn("profile lookup failed, using degraded session",
			"user_id", userID,
			"error", err,
		)
		degraded := &UserSession{
			UserID:     userID,
			Email:      email,
			Role:       user.Role(roleStr),
			Degraded:   true,
			ResolvedAt: time.Now(),
		}
		if empID, ok := claims["employee_id"].(string); ok && empID != "" {
			degraded.EmployeeID = &empID
		}
		// Degraded sessions are not cached so the next request retries
		// the lookup.
		return degraded
	}

	session := &UserSession{
		UserID:     resolved.ID,
		Email:      resolved.Email,
		Name:       resolved.Name,
		Role:       resolved.Role,
		EmployeeID: resolved.EmployeeID,
		ResolvedAt: time.Now(),
	}

	r.mu.Lock()
	r.cache[userID] = session
	r.mu.Unlock()

	return session
}

func (r *Resolver) fromCache(userID string) *UserSession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cached, ok := r.cache[userID]
	if !ok || time.Since(cached.ResolvedAt) > cacheTTL {
		return nil
	}
	return cached
}

// Invalidate drops the cached session for a user.
func (r *Resolver) Invalidate(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, userID)
}

// Logout revokes the refresh token best-effort under the sign-out
// timeout and always clears the cache entry. It cannot fail.
func (r *Resolver) Logout(ctx context.Context, userID string, refreshToken string) {
	if refreshToken != "" {
		besteffort.DoTimed(r.timeouts.SignOut, "revoke-refresh-token", func(ctx context.Context) error {
			r.jwtSvc.RevokeToken(refreshToken)
			return nil
		})
	}
	r.Invalidate(userID)
}
