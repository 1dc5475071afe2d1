package commands

import (
	"log"
	"time"

	"worknest_backend/internals/configs"
	helper "worknest_backend/internals/helpers"
	"worknest_backend/internals/middlewares"
	routes "worknest_backend/internals/route"
	"worknest_backend/internals/views"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// NewFiberApp builds the HTTP app with every middleware and route mounted.
func NewFiberApp(deps routes.Deps, cfg *configs.AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:                 views.NewEngine(),
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
			return helper.FromFiberError(c, err)
		},
	})

	middlewares.SetupMiddlewares(app, cfg.Timezone, cfg.RateLimitPerMinute)
	routes.SetupRoutes(app, deps)
	return app
}
