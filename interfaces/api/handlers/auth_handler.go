package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"heritage-archive/domain/dto"
	"heritage-archive/domain/services"
	"heritage-archive/interfaces/api/middleware"
	"heritage-archive/pkg/apperror"
	"heritage-archive/pkg/logger"
	"heritage-archive/pkg/utils"
)

type AuthHandler struct {
	authService  services.AuthService
	frontendURL  string
	tokenTTL     time.Duration
	secureCookie bool
}

func NewAuthHandler(authService services.AuthService, frontendURL string, tokenTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
	}
}

// GoogleLogin redirects to Google OAuth
// @Summary Start Google sign-in
// @Tags Auth
// @Param redirect query string false "Path to return to after sign-in"
// @Success 302
// @Router /auth/google [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	logger.Auth("login_start", "User initiating Google OAuth login", map[string]interface{}{
		"ip":         c.IP(),
		"user_agent": c.Get("User-Agent"),
	})

	// Generate state for CSRF protection
	state, err := generateState()
	if err != nil {
		logger.AuthError("login_error", "Failed to generate state", err, nil)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate state", nil)
	}

	h.setTempCookie(c, "oauth_state", state)
	h.setTempCookie(c, "oauth_redirect", safeRedirect(c.Query("redirect", "/")))

	return c.Redirect(h.authService.GetGoogleAuthURL(state))
}

// GoogleCallback handles the OAuth callback from Google
// @Summary Google OAuth callback
// @Tags Auth
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 302
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	state := c.Query("state")
	storedState := c.Cookies("oauth_state")
	h.clearCookie(c, "oauth_state")

	if state == "" || state != storedState {
		logger.AuthError("callback_error", "Invalid state parameter", nil, map[string]interface{}{
			"state_match": state == storedState,
		})
		return c.Redirect(h.frontendURL + "/login?error=invalid_state")
	}

	if errMsg := c.Query("error"); errMsg != "" {
		logger.AuthError("callback_error", "Google returned error", nil, map[string]interface{}{
			"google_error": errMsg,
		})
		return c.Redirect(h.frontendURL + "/login?error=" + url.QueryEscape(errMsg))
	}

	token, profile, err := h.authService.HandleGoogleCallback(c.UserContext(), c.Query("code"))
	if err != nil {
		logger.AuthError("callback_error", "Sign-in failed", err, nil)
		return c.Redirect(h.frontendURL + "/login?error=" + url.QueryEscape(string(apperror.KindOf(err))))
	}

	logger.Auth("callback_success", "User authenticated successfully", map[string]interface{}{
		"user_id":     profile.ID,
		"user_email":  profile.Email,
		"is_approved": profile.IsApproved,
	})

	redirectURL := safeRedirect(c.Cookies("oauth_redirect", "/"))
	h.clearCookie(c, "oauth_redirect")

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.tokenTTL),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: "Lax",
	})

	// Unapproved accounts land on the waiting page instead of their target.
	if !profile.CanContribute() {
		redirectURL = "/pending"
	}
	return c.Redirect(h.frontendURL + redirectURL)
}

// GetCurrentUser returns the current authenticated user
// @Summary Current account
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} utils.Response{data=dto.ProfileResponse}
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		return utils.UnauthorizedResponse(c, "Not authenticated")
	}
	return utils.SuccessResponse(c, "User retrieved successfully", dto.ProfileToResponse(profile))
}

// Logout clears the auth cookie
// @Summary Sign out
// @Tags Auth
// @Success 200 {object} utils.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearCookie(c, middleware.AuthCookieName)
	return utils.SuccessResponse(c, "Logged out successfully", nil)
}

func (h *AuthHandler) setTempCookie(c *fiber.Ctx, name, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: "Lax",
	})
}

func (h *AuthHandler) clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureCookie,
	})
}

// safeRedirect only allows local paths, so the callback cannot be used as an open redirect.
func safeRedirect(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.Contains(path, "\\") {
		return "/"
	}
	return path
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
