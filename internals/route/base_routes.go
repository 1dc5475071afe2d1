package routes

import (
	"context"
	"os"
	"time"

	"worknest_backend/internals/store"

	"github.com/gofiber/fiber/v2"
)

func BaseRoutes(app *fiber.App, st store.Store) {
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		storeStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := st.Ping(ctx); err != nil {
			storeStatus = "Store connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		uptime := time.Since(startTime).Seconds()

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"store":          storeStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(uptime),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})
}
