package middlewares

import (
	"strings"
	"time"

	helper "worknest_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const defaultRatePerMinute = 600

// Global limiter for every route. A shared scan terminal sits behind one IP,
// so the budget is sized for a shift change, not for a single browser.
func GlobalRateLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		perMinute = defaultRatePerMinute
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.RenderErrorPage(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	})
}

// Tighter limiter for /login.
func LoginRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|" + c.Path()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.RenderWithError(c, fiber.StatusTooManyRequests, "index",
				"Too many login attempts. Try again in a minute.", nil)
		},
	})
}

// ScanRateLimiter caps repeated scans of one credential. Keyed on the scanned
// value rather than the IP, since every worker scans at the same terminal.
func ScanRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.FormValue("auth_type") + "|" + strings.TrimSpace(c.FormValue("auth_value"))
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.RenderWithError(c, fiber.StatusTooManyRequests, "index",
				"Too many scans. Try again in a minute.", nil)
		},
	})
}
