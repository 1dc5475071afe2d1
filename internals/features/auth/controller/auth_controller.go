// file: internals/features/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"

	"worknest_backend/internals/features/auth/dto"
	"worknest_backend/internals/features/auth/service"
	helper "worknest_backend/internals/helpers"
	"worknest_backend/internals/middlewares/auth"
	"worknest_backend/internals/store"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type AuthController struct {
	Identity *service.IdentityService
	Sessions *session.Store
	Validate *validator.Validate
}

func NewAuthController(st store.Store, sessions *session.Store) *AuthController {
	return &AuthController{
		Identity: service.NewIdentityService(service.NewScanIndex(st)),
		Sessions: sessions,
		Validate: validator.New(),
	}
}

// GET /
func (ac *AuthController) Index(c *fiber.Ctx) error {
	return helper.Render(c, "index", fiber.Map{"Title": "Sign in"})
}

// POST /login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.RenderWithError(c, fiber.StatusBadRequest, "index", "Invalid form", nil)
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.RenderWithError(c, fiber.StatusUnprocessableEntity, "index", helper.ValidationMessage(err), nil)
	}

	id, err := ac.Identity.ResolveAdminCredential(c.UserContext(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return helper.RenderWithError(c, fiber.StatusUnauthorized, "index", "Invalid username or password", nil)
	}
	if err != nil {
		log.Printf("[ERROR] admin login: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Login failed")
	}
	return ac.signIn(c, id)
}

// POST /worker_auth
func (ac *AuthController) WorkerAuth(c *fiber.Ctx) error {
	var req dto.WorkerAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.RenderWithError(c, fiber.StatusBadRequest, "index", "Invalid form", nil)
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.RenderWithError(c, fiber.StatusUnprocessableEntity, "index", helper.ValidationMessage(err), nil)
	}

	id, err := ac.Identity.ResolveWorkerCredential(c.UserContext(), req.AuthType, req.AuthValue)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return helper.RenderWithError(c, fiber.StatusUnauthorized, "index", "Worker not found", nil)
	}
	if err != nil {
		log.Printf("[ERROR] worker auth: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Authentication failed")
	}

	// an admin already signed in on this browser keeps the session; it can open the worker page anyway
	if !id.IsAdmin() {
		if current, err := auth.CurrentPrincipal(c, ac.Sessions); err == nil && current.IsAdmin() &&
			current.CanAccessWorker(id.AdminID, id.WorkerID) {
			return c.Redirect(fmt.Sprintf("/worker/%s/%s", id.AdminID, id.WorkerID))
		}
	}
	return ac.signIn(c, id)
}

func (ac *AuthController) signIn(c *fiber.Ctx, id service.Identity) error {
	err := auth.SignIn(c, ac.Sessions, auth.Principal{
		AdminID:   id.AdminID,
		AdminName: id.AdminName,
		WorkerID:  id.WorkerID,
	})
	if err != nil {
		log.Printf("[ERROR] save session: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to start session")
	}
	if id.IsAdmin() {
		log.Printf("[INFO] admin %s signed in", id.AdminID)
		return c.Redirect("/admin/dashboard")
	}
	return c.Redirect(fmt.Sprintf("/worker/%s/%s", id.AdminID, id.WorkerID))
}

// GET /logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := auth.SignOut(c, ac.Sessions); err != nil {
		log.Printf("[ERROR] destroy session: %v", err)
	}
	return c.Redirect("/")
}
