package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"heritage-archive/domain/models"
	"heritage-archive/domain/services"
	"heritage-archive/pkg/apperror"
	"heritage-archive/pkg/logger"
	"heritage-archive/pkg/utils"
)

// AuthCookieName is where the browser keeps the session token after the OAuth callback.
const AuthCookieName = "auth_token"

const profileLocal = "profile"

// Protected validates the JWT from the Authorization header or the session
// cookie and stores the user context in locals.
func Protected(jwtSecret string) fiber.Handler {
	return authenticate(jwtSecret, false)
}

// ProtectedWithQueryToken also accepts ?token=, for WebSocket upgrades where
// the browser cannot set headers.
func ProtectedWithQueryToken(jwtSecret string) fiber.Handler {
	return authenticate(jwtSecret, true)
}

func authenticate(jwtSecret string, allowQuery bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := utils.ExtractTokenFromHeader(c.Get("Authorization"))
		if token == "" {
			token = c.Cookies(AuthCookieName)
		}
		if token == "" && allowQuery {
			token = c.Query("token")
		}
		if token == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization")
		}

		userCtx, err := utils.ValidateToken(token, jwtSecret)
		if err != nil {
			logger.Debug(logger.CategoryAuth, "token_rejected", "Token validation failed", map[string]interface{}{
				"path":  c.Path(),
				"error": err.Error(),
			})
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired")
			case errors.Is(err, utils.ErrInvalidToken):
				return utils.UnauthorizedResponse(c, "Invalid token")
			default:
				return utils.UnauthorizedResponse(c, "Token validation failed")
			}
		}

		c.Locals("user", userCtx)
		return c.Next()
	}
}

// LoadProfile fetches the caller's profile from the store on every request.
// Role and approval are never taken from the token.
func LoadProfile(authService services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := utils.GetUserFromContext(c)
		if err != nil {
			return utils.UnauthorizedResponse(c, "User not authenticated")
		}

		profile, err := authService.GetCurrentUser(c.UserContext(), user.ID)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindUnauthorized {
				return utils.UnauthorizedResponse(c, apperror.PublicMessage(err))
			}
			return err
		}

		c.Locals(profileLocal, profile)
		return c.Next()
	}
}

// RequireApproved lets admins and approved members through.
func RequireApproved() fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := CurrentProfile(c)
		if profile == nil {
			return utils.UnauthorizedResponse(c, "User not authenticated")
		}
		if !profile.CanContribute() {
			return utils.ForbiddenResponse(c, "pending_approval", "Your account is waiting for approval")
		}
		return c.Next()
	}
}

// AdminOnly rejects non-admin profiles. Services check the role again.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := CurrentProfile(c)
		if profile == nil {
			return utils.UnauthorizedResponse(c, "User not authenticated")
		}
		if !profile.IsAdmin() {
			return utils.ForbiddenResponse(c, "forbidden", "Insufficient permissions")
		}
		return c.Next()
	}
}

// CurrentProfile returns the profile loaded by LoadProfile, or nil.
func CurrentProfile(c *fiber.Ctx) *models.Profile {
	profile, _ := c.Locals(profileLocal).(*models.Profile)
	return profile
}
