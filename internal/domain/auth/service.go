package auth

import (
	"context"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	OAuthRedirectGoogle(ctx context.Context, userAgent string) (redirectURL string)
	OAuthCallbackGoogle(ctx context.Context, code string) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}
