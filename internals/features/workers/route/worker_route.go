package route

import (
	"worknest_backend/internals/features/workers/controller"
	"worknest_backend/internals/store"

	"github.com/gofiber/fiber/v2"
)

// WorkerAdminRoutes mounts worker management on the admin group.
func WorkerAdminRoutes(admin fiber.Router, st store.Store) {
	ctrl := controller.NewWorkerController(st)

	admin.Get("/workers", ctrl.List)
	admin.Get("/register", ctrl.RegisterForm)
	admin.Post("/register", ctrl.Register)
	admin.Get("/edit_worker/:worker_id", ctrl.EditForm)
	admin.Post("/edit_worker/:worker_id", ctrl.Edit)
	admin.Post("/delete_worker/:worker_id", ctrl.Delete)
}
