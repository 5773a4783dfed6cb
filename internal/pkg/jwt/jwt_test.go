package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/user"
)

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("secret", "15m", "24h")

	token, _, err := svc.GenerateRefreshToken("u1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
}

func TestRevokeTokenPrunesExpiredEntries(t *testing.T) {
	svc := NewJWTService("secret", "15m", "24h").(*JWTService)

	svc.mu.Lock()
	svc.revokedTokens["stale"] = time.Now().Add(-25 * time.Hour).Unix()
	svc.revokedTokens["recent"] = time.Now().Add(-time.Hour).Unix()
	svc.mu.Unlock()

	svc.RevokeToken("fresh")

	assert.True(t, svc.IsTokenRevoked("fresh"))
	assert.True(t, svc.IsTokenRevoked("recent"))
	// Past the refresh lifetime the token cannot validate anyway, so
	// its entry is dropped on the next revoke.
	assert.False(t, svc.IsTokenRevoked("stale"))
}

func TestAccessTokenCarriesRoleClaim(t *testing.T) {
	svc := NewJWTService("secret", "15m", "24h")

	employeeID := "emp-1"
	token, _, err := svc.GenerateAccessToken("u1", "ayu@example.com", &employeeID, user.RoleEmployee)
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	role, _ := decoded.Get("role")
	assert.Equal(t, "employee", role)
	tokenType, _ := decoded.Get("type")
	assert.Equal(t, "access", tokenType)
	empID, _ := decoded.Get("employee_id")
	assert.Equal(t, "emp-1", empID)
}

func TestSSETokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "15m", "24h")

	token, expiresIn, err := svc.GenerateSSEToken("u1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	// A refresh token must not pass as an SSE token.
	refresh, _, err := svc.GenerateRefreshToken("u1")
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(refresh)
	assert.Error(t, err)
}
