package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kitabonkesaar/attendance-app-saas/internal/config"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/auth"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/user"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/besteffort"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/email"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/jwt"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/oauth"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/timeout"
)

const resetTokenTTL = 30 * time.Minute

type Service struct {
	userRepo    user.UserRepository
	jwtSvc      jwt.Service
	googleSvc   oauth.GoogleService
	emailSvc    email.EmailService
	timeouts    config.TimeoutConfig
	frontendURL string
}

func NewAuthService(
	userRepo user.UserRepository,
	jwtSvc jwt.Service,
	googleSvc oauth.GoogleService,
	emailSvc email.EmailService,
	timeouts config.TimeoutConfig,
	frontendURL string,
) *Service {
	return &Service{
		userRepo:    userRepo,
		jwtSvc:      jwtSvc,
		googleSvc:   googleSvc,
		emailSvc:    emailSvc,
		timeouts:    timeouts,
		frontendURL: frontendURL,
	}
}

// Register implements auth.AuthService. Self-registration creates an
// admin account; employee accounts are provisioned by an admin through
// employee management.
func (s *Service) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	created, err := timeout.RunValue(ctx, s.timeouts.Registration, func(ctx context.Context) (user.User, error) {
		return s.userRepo.Create(ctx, user.User{
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: &hashStr,
			Role:         user.RoleAdmin,
		})
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return s.issueTokens(created)
}

// Login implements auth.AuthService.
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if u.PasswordHash == nil {
		// OAuth-only account.
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

// OAuthRedirectGoogle implements auth.AuthService.
func (s *Service) OAuthRedirectGoogle(ctx context.Context, userAgent string) string {
	state := s.googleSvc.GenerateState(userAgent)
	return s.googleSvc.AuthURL(state)
}

// OAuthCallbackGoogle implements auth.AuthService. Google sign-in only
// attaches to existing accounts; it never provisions one, so the role
// stays whatever was fixed at account creation.
func (s *Service) OAuthCallbackGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	token, err := s.googleSvc.Exchange(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	profile, err := s.googleSvc.Profile(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to fetch google profile: %w", err)
	}
	if !profile.EmailVerified {
		return auth.TokenResponse{}, auth.ErrEmailNotVerified
	}

	u, err := s.userRepo.GetByEmail(ctx, profile.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrOAuthNotLinked
		}
		return auth.TokenResponse{}, err
	}

	if u.Name == "" {
		// Accounts linked before a profile was filled in borrow the
		// Google display name for the session.
		u.Name = profile.Name
	}

	return s.issueTokens(u)
}

// RefreshToken implements auth.AuthService.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (auth.AccessTokenResponse, error) {
	if s.jwtSvc.IsTokenRevoked(refreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	decoded, err := s.jwtSvc.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if t, _ := decoded.Get("type"); t != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	userIDVal, ok := decoded.Get("user_id")
	if !ok {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	userID, _ := userIDVal.(string)

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, err
	}

	accessToken, expiresAt, err := s.jwtSvc.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		s.jwtSvc.RevokeToken(refreshToken)
	}
	return nil
}

// ForgotPassword implements auth.AuthService. An unknown email returns
// success too, so the endpoint cannot be used to probe accounts.
func (s *Service) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			slog.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	rawToken := uuid.NewString()
	expiresAt := time.Now().Add(resetTokenTTL)

	if err := s.userRepo.SetResetToken(ctx, u.ID, hashToken(rawToken), expiresAt); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, rawToken)
	besteffort.Go(30*time.Second, "password-reset-email", func(ctx context.Context) error {
		return s.emailSvc.SendPasswordReset(u.Email, resetLink, expiresAt.Format(time.RFC1123))
	})

	return nil
}

// ResetPassword implements auth.AuthService.
func (s *Service) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.userRepo.GetByResetToken(ctx, hashToken(req.Token))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrInvalidToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return err
	}

	return s.userRepo.ClearResetToken(ctx, u.ID)
}

func (s *Service) issueTokens(u user.User) (auth.TokenResponse, error) {
	accessToken, expiresAt, err := s.jwtSvc.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtSvc.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:  accessToken,
		ExpiresAt:    expiresAt,
		RefreshToken: refreshToken,
		RefreshExp:   refreshExp,
		User: auth.UserResponse{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Role:       string(u.Role),
			EmployeeID: u.EmployeeID,
		},
	}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
