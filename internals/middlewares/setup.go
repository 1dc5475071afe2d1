package middlewares

import (
	"time"

	"worknest_backend/internals/middlewares/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
)

// SetupMiddlewares installs the stack shared by every route.
func SetupMiddlewares(app *fiber.App, timezone string, ratePerMinute int) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestID(10 * time.Second))
	app.Use(logger.LoggerMiddleware(timezone))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(GlobalRateLimiter(ratePerMinute))
}
