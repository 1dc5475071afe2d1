// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	attendanceRoute "worknest_backend/internals/features/attendance/route"
	attendanceService "worknest_backend/internals/features/attendance/service"
	authRoute "worknest_backend/internals/features/auth/route"
	workerRoute "worknest_backend/internals/features/workers/route"
	"worknest_backend/internals/middlewares/auth"
	"worknest_backend/internals/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

var startTime time.Time

// Deps are built once in the serve command.
type Deps struct {
	Store    store.Store
	Sessions *session.Store
	Ledger   *attendanceService.LedgerService
}

func SetupRoutes(app *fiber.App, deps Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, deps.Store)

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, deps.Store, deps.Sessions)

	log.Println("[INFO] Setting up worker clock routes...")
	attendanceRoute.AttendanceWorkerRoutes(app, auth.RequireSignedIn(deps.Sessions), deps.Store, deps.Ledger)

	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/admin", auth.RequireAdmin(deps.Sessions))
	attendanceRoute.AttendanceAdminRoutes(admin, deps.Store, deps.Ledger)
	workerRoute.WorkerAdminRoutes(admin, deps.Store)
}
