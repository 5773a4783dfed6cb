package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/kitabonkesaar/attendance-app-saas/internal/config"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/auth"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/user"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/oauth"
)

type fakeUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type fakeJWT struct {
	revoked []string
}

func (f *fakeJWT) GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (string, int64, error) {
	return "access-" + userID, time.Now().Add(time.Hour).Unix(), nil
}
func (f *fakeJWT) GenerateRefreshToken(userID string) (string, int64, error) {
	return "refresh-" + userID, time.Now().Add(24 * time.Hour).Unix(), nil
}
func (f *fakeJWT) GenerateSSEToken(userID string) (string, int, error) { return "sse", 300, nil }
func (f *fakeJWT) ValidateSSEToken(tokenString string) (string, error) { return "", nil }
func (f *fakeJWT) JWTAuth() *jwtauth.JWTAuth                           { return nil }
func (f *fakeJWT) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{}
}
func (f *fakeJWT) RevokeToken(token string) { f.revoked = append(f.revoked, token) }
func (f *fakeJWT) IsTokenRevoked(token string) bool { return false }

type fakeGoogle struct {
	profile oauth.Profile
	err     error
}

func (f *fakeGoogle) GenerateState(userAgent string) string { return "state" }
func (f *fakeGoogle) AuthURL(state string) string           { return "https://example.com?state=" + state }
func (f *fakeGoogle) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "bad" {
		return nil, assert.AnError
	}
	return &oauth2.Token{AccessToken: "t"}, nil
}
func (f *fakeGoogle) Profile(ctx context.Context, token *oauth2.Token) (oauth.Profile, error) {
	return f.profile, f.err
}

func newOAuthService(users map[string]user.User, profile oauth.Profile) *Service {
	return NewAuthService(
		&fakeUserRepo{users: users},
		&fakeJWT{},
		&fakeGoogle{profile: profile},
		nil,
		config.TimeoutConfig{},
		"http://frontend",
	)
}

func TestOAuthCallbackIssuesTokensForLinkedAccount(t *testing.T) {
	users := map[string]user.User{
		"ayu@example.com": {ID: "u1", Email: "ayu@example.com", Name: "Ayu", Role: user.RoleEmployee},
	}
	svc := newOAuthService(users, oauth.Profile{
		GoogleID:      "g-1",
		Email:         "ayu@example.com",
		EmailVerified: true,
		Name:          "Ayu Lestari",
	})

	resp, err := svc.OAuthCallbackGoogle(context.Background(), "code")
	require.NoError(t, err)

	assert.Equal(t, "access-u1", resp.AccessToken)
	// The stored name wins over the Google display name.
	assert.Equal(t, "Ayu", resp.User.Name)
	assert.Equal(t, "employee", resp.User.Role)
}

func TestOAuthCallbackBorrowsGoogleNameWhenBlank(t *testing.T) {
	users := map[string]user.User{
		"ayu@example.com": {ID: "u1", Email: "ayu@example.com", Role: user.RoleEmployee},
	}
	svc := newOAuthService(users, oauth.Profile{
		Email:         "ayu@example.com",
		EmailVerified: true,
		Name:          "Ayu Lestari",
	})

	resp, err := svc.OAuthCallbackGoogle(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "Ayu Lestari", resp.User.Name)
}

func TestOAuthCallbackRejectsUnverifiedEmail(t *testing.T) {
	svc := newOAuthService(nil, oauth.Profile{Email: "ayu@example.com", EmailVerified: false})

	_, err := svc.OAuthCallbackGoogle(context.Background(), "code")
	assert.ErrorIs(t, err, auth.ErrEmailNotVerified)
}

func TestOAuthCallbackRejectsUnlinkedAccount(t *testing.T) {
	svc := newOAuthService(nil, oauth.Profile{Email: "nobody@example.com", EmailVerified: true})

	_, err := svc.OAuthCallbackGoogle(context.Background(), "code")
	assert.ErrorIs(t, err, auth.ErrOAuthNotLinked)
}

func TestOAuthCallbackRejectsBadCode(t *testing.T) {
	svc := newOAuthService(nil, oauth.Profile{})

	_, err := svc.OAuthCallbackGoogle(context.Background(), "bad")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
