package route

import (
	"worknest_backend/internals/features/auth/controller"
	rateLimiter "worknest_backend/internals/middlewares"
	"worknest_backend/internals/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

func AuthRoutes(app fiber.Router, st store.Store, sessions *session.Store) {
	authController := controller.NewAuthController(st, sessions)

	app.Get("/", authController.Index)
	app.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	app.Post("/worker_auth", rateLimiter.ScanRateLimiter(), authController.WorkerAuth)
	app.Get("/logout", authController.Logout)
}
