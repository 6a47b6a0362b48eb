package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"heritage-archive/pkg/config"
	"heritage-archive/pkg/logger"
	"heritage-archive/pkg/utils"
)

// RateLimiter is the coarse per-client limit on the whole API. It runs before
// the session chain, so a client is identified by its token subject when one is
// present and by IP otherwise. Relatives behind one home router share an IP.
func RateLimiter(cfg *config.RateLimitConfig, jwtSecret string) fiber.Handler {
	return newLimiter(cfg.Enabled, cfg.MaxRequests, cfg.WindowSeconds, clientKey(jwtSecret),
		"rate_limited", "Too many requests. Please try again later.")
}

// AuthRateLimiter guards the OAuth endpoints. Nobody has a session yet, so it keys on IP.
func AuthRateLimiter(cfg *config.RateLimitConfig) fiber.Handler {
	return newLimiter(cfg.Enabled, cfg.AuthMaxRequests, cfg.AuthWindowSeconds, ipKey,
		"auth_rate_limited", "Too many sign-in attempts. Please try again later.")
}

// WriteRateLimiter limits submissions, comments and messages per account.
// Mount it after LoadProfile; one instance shares its budget across every route it guards.
func WriteRateLimiter(cfg *config.RateLimitConfig) fiber.Handler {
	return newLimiter(cfg.Enabled, cfg.WriteMaxRequests, cfg.WriteWindowSeconds, accountKey,
		"write_rate_limited", "Too many submissions. Please slow down.")
}

func newLimiter(enabled bool, max, windowSeconds int, key func(*fiber.Ctx) string, code, message string) fiber.Handler {
	if !enabled || max <= 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   time.Duration(windowSeconds) * time.Second,
		KeyGenerator: key,
		LimitReached: func(c *fiber.Ctx) error {
			logger.Warn(logger.CategoryAPI, code, "Rate limit reached", map[string]interface{}{
				"key":    key(c),
				"path":   c.Path(),
				"method": c.Method(),
			})
			return utils.CodedErrorResponse(c, fiber.StatusTooManyRequests, code, message)
		},
	})
}

func ipKey(c *fiber.Ctx) string {
	return "ip:" + c.IP()
}

// accountKey prefers the loaded profile, then the token subject, then the IP.
func accountKey(c *fiber.Ctx) string {
	if profile := CurrentProfile(c); profile != nil {
		return "user:" + profile.ID
	}
	if user, ok := c.Locals("user").(*utils.UserContext); ok && user != nil {
		return "user:" + user.ID
	}
	return ipKey(c)
}

// clientKey reads the token subject without rejecting anything; a bad token
// falls back to the IP and the session chain rejects it later.
func clientKey(secret string) func(*fiber.Ctx) string {
	return func(c *fiber.Ctx) string {
		if secret == "" {
			return ipKey(c)
		}
		token := utils.ExtractTokenFromHeader(c.Get("Authorization"))
		if token == "" {
			token = c.Cookies(AuthCookieName)
		}
		if token == "" {
			return ipKey(c)
		}
		user, err := utils.ValidateToken(token, secret)
		if err != nil {
			return ipKey(c)
		}
		return "user:" + user.ID
	}
}
