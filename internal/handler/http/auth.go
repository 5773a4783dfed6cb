package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/auth"
	"github.com/kitabonkesaar/attendance-app-saas/internal/handler/http/response"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/jwt"
	"github.com/kitabonkesaar/attendance-app-saas/internal/service/session"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	Session(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.AuthService
	jwtService  jwt.Service
	resolver    *session.Resolver
}

func NewAuthHandler(authService auth.AuthService, jwtService jwt.Service, resolver *session.Resolver) AuthHandler {
	return &authHandlerImpl{
		authService: authService,
		jwtService:  jwtService,
		resolver:    resolver,
	}
}

// Register implements AuthHandler.
func (h *authHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshExp))
	response.Created(w, "Registration successful", result)
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshExp))
	response.Success(w, result)
}

// LoginWithGoogle implements AuthHandler.
func (h *authHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	redirectURL := h.authService.OAuthRedirectGoogle(r.Context(), r.UserAgent())
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle implements AuthHandler.
func (h *authHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		response.BadRequest(w, "Missing authorization code", nil)
		return
	}

	result, err := h.authService.OAuthCallbackGoogle(r.Context(), code)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshExp))
	response.Success(w, result)
}

// RefreshToken implements AuthHandler.
func (h *authHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.Unauthorized(w, "Missing refresh token")
		return
	}

	result, err := h.authService.RefreshToken(r.Context(), cookie.Value)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Logout implements AuthHandler. Logout always succeeds from the
// client's point of view; revocation is best-effort.
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken := ""
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		refreshToken = cookie.Value
	}

	if userID := userIDFromClaims(r); userID != "" {
		h.resolver.Logout(r.Context(), userID, refreshToken)
	} else if refreshToken != "" {
		_ = h.authService.Logout(r.Context(), refreshToken)
	}

	expired := h.jwtService.RefreshTokenCookie("", 0)
	expired.MaxAge = -1
	http.SetCookie(w, expired)

	response.SuccessWithMessage(w, "Logged out", nil)
}

// ForgotPassword implements AuthHandler.
func (h *authHandlerImpl) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "If the email exists, a reset link has been sent", nil)
}

// ResetPassword implements AuthHandler.
func (h *authHandlerImpl) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.authService.ResetPassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password has been reset", nil)
}

// Session implements AuthHandler. A nil session serializes as null
// data, never as an error.
func (h *authHandlerImpl) Session(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Success(w, nil)
		return
	}

	response.Success(w, h.resolver.Resolve(r.Context(), claims))
}

func userIDFromClaims(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}
