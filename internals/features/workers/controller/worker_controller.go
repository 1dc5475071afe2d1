// file: internals/features/workers/controller/worker_controller.go
package controller

import (
	"errors"
	"log"

	"worknest_backend/internals/features/workers/dto"
	"worknest_backend/internals/features/workers/service"
	helper "worknest_backend/internals/helpers"
	"worknest_backend/internals/store"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type WorkerController struct {
	Registry *service.RegistryService
	Validate *validator.Validate
}

func NewWorkerController(st store.Store) *WorkerController {
	return &WorkerController{
		Registry: service.NewRegistryService(st),
		Validate: validator.New(),
	}
}

/* ========================== LIST ========================== */

// GET /admin/workers
func (wc *WorkerController) List(c *fiber.Ctx) error {
	workers, err := wc.Registry.ListWorkers(c.UserContext(), helper.AdminIDFromLocals(c))
	if err != nil {
		log.Printf("[ERROR] list workers: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load workers")
	}
	return helper.Render(c, "admin_workers", fiber.Map{
		"Title":   "Workers",
		"Workers": workers,
	})
}

/* ========================== REGISTER ========================== */

// GET /admin/register
func (wc *WorkerController) RegisterForm(c *fiber.Ctx) error {
	return helper.Render(c, "admin_register", fiber.Map{
		"Title": "Register worker",
		"Form":  dto.WorkerFormView{},
	})
}

// POST /admin/register
func (wc *WorkerController) Register(c *fiber.Ctx) error {
	var form dto.WorkerForm
	if err := c.BodyParser(&form); err != nil {
		return helper.RenderWithError(c, fiber.StatusBadRequest, "admin_register", "Invalid form", fiber.Map{
			"Form": dto.WorkerFormView{},
		})
	}
	form.Normalize()
	if err := wc.Validate.Struct(form); err != nil {
		return helper.RenderWithError(c, fiber.StatusUnprocessableEntity, "admin_register", helper.ValidationMessage(err), fiber.Map{
			"Form": form.View(),
		})
	}

	if _, err := wc.Registry.RegisterWorker(c.UserContext(), helper.AdminIDFromLocals(c), form.ToInput()); err != nil {
		log.Printf("[ERROR] register worker: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to register worker")
	}
	return c.Redirect("/admin/workers")
}

/* ========================== EDIT ========================== */

// GET /admin/edit_worker/:worker_id
func (wc *WorkerController) EditForm(c *fiber.Ctx) error {
	workerID := c.Params("worker_id")
	w, err := wc.Registry.GetWorker(c.UserContext(), helper.AdminIDFromLocals(c), workerID)
	if errors.Is(err, service.ErrWorkerNotFound) {
		return c.Redirect("/admin/workers")
	}
	if err != nil {
		log.Printf("[ERROR] load worker %s: %v", workerID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load worker")
	}
	return helper.Render(c, "admin_edit_worker", fiber.Map{
		"Title":    "Edit worker",
		"WorkerID": workerID,
		"Form":     dto.FromModel(w),
	})
}

// POST /admin/edit_worker/:worker_id
func (wc *WorkerController) Edit(c *fiber.Ctx) error {
	workerID := c.Params("worker_id")

	var form dto.WorkerForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}
	form.Normalize()
	if err := wc.Validate.Struct(form); err != nil {
		return helper.RenderWithError(c, fiber.StatusUnprocessableEntity, "admin_edit_worker", helper.ValidationMessage(err), fiber.Map{
			"WorkerID": workerID,
			"Form":     form.View(),
		})
	}

	err := wc.Registry.UpdateWorker(c.UserContext(), helper.AdminIDFromLocals(c), workerID, form.ToInput())
	if errors.Is(err, service.ErrWorkerNotFound) {
		return c.Redirect("/admin/workers")
	}
	if err != nil {
		log.Printf("[ERROR] update worker %s: %v", workerID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update worker")
	}
	return c.Redirect("/admin/workers")
}

/* ========================== DELETE ========================== */

// POST /admin/delete_worker/:worker_id
func (wc *WorkerController) Delete(c *fiber.Ctx) error {
	workerID := c.Params("worker_id")
	err := wc.Registry.DeleteWorker(c.UserContext(), helper.AdminIDFromLocals(c), workerID)
	if err != nil && !errors.Is(err, service.ErrWorkerNotFound) {
		log.Printf("[ERROR] delete worker %s: %v", workerID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete worker")
	}
	return c.Redirect("/admin/workers")
}
