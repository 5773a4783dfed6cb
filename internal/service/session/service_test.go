package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitabonkesaar/attendance-app-saas/internal/config"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/user"
)

type fakeUserRepo struct {
	users map[string]user.User
	err   error
	delay time.Duration
	calls int
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return user.User{}, ctx.Err()
		}
	}
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	return u, nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, hash string) error { return nil }
func (f *fakeUserRepo) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	return nil
}
func (f *fakeUserRepo) GetByResetToken(ctx context.Context, tokenHash string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) ClearResetToken(ctx context.Context, userID string) error { return nil }

type fakeJWT struct {
	revoked []string
}

func (f *fakeJWT) GenerateAccessToken(userID, email string, employeeID *string, role user.Role) (string, int64, error) {
	return "access", 0, nil
}
func (f *fakeJWT) GenerateRefreshToken(userID string) (string, int64, error) { return "refresh", 0, nil }
func (f *fakeJWT) GenerateSSEToken(userID string) (string, int, error)      { return "sse", 300, nil }
func (f *fakeJWT) ValidateSSEToken(token string) (string, error)            { return "", nil }
func (f *fakeJWT) JWTAuth() *jwtauth.JWTAuth                                { return nil }
func (f *fakeJWT) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{}
}
func (f *fakeJWT) RevokeToken(token string) { f.revoked = append(f.revoked, token) }
func (f *fakeJWT) IsTokenRevoked(token string) bool {
	for _, r := range f.revoked {
		if r == token {
			return true
		}
	}
	return false
}

func testTimeouts() config.TimeoutConfig {
	return config.TimeoutConfig{
		Registration: time.Second,
		ProfileSync:  100 * time.Millisecond,
		Save:         time.Second,
		SignOut:      100 * time.Millisecond,
	}
}

func accessClaims(userID string) map[string]interface{} {
	return map[string]interface{}{
		"user_id": userID,
		"email":   "claims@example.com",
		"role":    "employee",
		"type":    "access",
	}
}

func TestResolveSuccess(t *testing.T) {
	empID := "emp-1"
	repo := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", Email: "fresh@example.com", Name: "Fresh", Role: user.RoleManager, EmployeeID: &empID},
	}}
	r := NewResolver(repo, &fakeJWT{}, testTimeouts())

	session := r.Resolve(context.Background(), accessClaims("u1"))
	require.NotNil(t, session)

	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, "fresh@example.com", session.Email)
	assert.Equal(t, "Fresh", session.Name)
	assert.Equal(t, user.RoleManager, session.Role)
	require.NotNil(t, session.EmployeeID)
	assert.Equal(t, "emp-1", *session.EmployeeID)
	assert.False(t, session.Degraded)
}

func TestResolveRejectsBadClaims(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]user.User{}}
	r := NewResolver(repo, &fakeJWT{}, testTimeouts())

	assert.Nil(t, r.Resolve(context.Background(), nil))

	refresh := accessClaims("u1")
	refresh["type"] = "refresh"
	assert.Nil(t, r.Resolve(context.Background(), refresh))

	noUser := accessClaims("")
	assert.Nil(t, r.Resolve(context.Background(), noUser))

	badRole := accessClaims("u1")
	badRole["role"] = "superuser"
	assert.Nil(t, r.Resolve(context.Background(), badRole))
}

func TestResolveDegradesOnRepoError(t *testing.T) {
	repo := &fakeUserRepo{err: errors.New("connection refused")}
	r := NewResolver(repo, &fakeJWT{}, testTimeouts())

	claims := accessClaims("u1")
	claims["employee_id"] = "emp-9"

	session := r.Resolve(context.Background(), claims)
	require.NotNil(t, session)

	assert.True(t, session.Degraded)
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, "claims@example.com", session.Email)
	assert.Equal(t, user.RoleEmployee, session.Role)
	require.NotNil(t, session.EmployeeID)
	assert.Equal(t, "emp-9", *session.EmployeeID)

	// Degraded sessions are not cached; the next resolve retries.
	r.Resolve(context.Background(), claims)
	assert.Equal(t, 2, repo.calls)
}

func TestResolveDegradesOnTimeout(t *testing.T) {
	repo := &fakeUserRepo{
		users: map[string]user.User{"u1": {ID: "u1", Role: user.RoleAdmin}},
		delay: 500 * time.Millisecond,
	}
	r := NewResolver(repo, &fakeJWT{}, testTimeouts())

	start := time.Now()
	session := r.Resolve(context.Background(), accessClaims("u1"))
	require.NotNil(t, session)

	assert.True(t, session.Degraded)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestResolveCachesAndInvalidates(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", Email: "fresh@example.com", Role: user.RoleEmployee},
	}}
	r := NewResolver(repo, &fakeJWT{}, testTimeouts())

	first := r.Resolve(context.Background(), accessClaims("u1"))
	second := r.Resolve(context.Background(), accessClaims("u1"))
	require.NotNil(t, first)
	require.NotNil(t, second)

	assert.Equal(t, 1, repo.calls)
	assert.Same(t, first, second)

	r.Invalidate("u1")
	r.Resolve(context.Background(), accessClaims("u1"))
	assert.Equal(t, 2, repo.calls)
}

func TestLogoutRevokesAndClearsCache(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", Role: user.RoleEmployee},
	}}
	jwtSvc := &fakeJWT{}
	r := NewResolver(repo, jwtSvc, testTimeouts())

	r.Resolve(context.Background(), accessClaims("u1"))
	r.Logout(context.Background(), "u1", "refresh-token-value")

	assert.True(t, jwtSvc.IsTokenRevoked("refresh-token-value"))

	r.Resolve(context.Background(), accessClaims("u1"))
	assert.Equal(t, 2, repo.calls)
}

func TestLogoutWithoutRefreshToken(t *testing.T) {
	jwtSvc := &fakeJWT{}
	r := NewResolver(&fakeUserRepo{}, jwtSvc, testTimeouts())

	r.Logout(context.Background(), "u1", "")
	assert.Empty(t, jwtSvc.revoked)
}
