package route

import (
	"worknest_backend/internals/features/attendance/controller"
	"worknest_backend/internals/features/attendance/service"
	"worknest_backend/internals/store"

	"github.com/gofiber/fiber/v2"
)

// AttendanceWorkerRoutes mounts the clock pages behind the signed-in guard.
func AttendanceWorkerRoutes(app fiber.Router, signedIn fiber.Handler, st store.Store, ledger *service.LedgerService) {
	ctrl := controller.NewAttendanceController(st, ledger)

	app.Get("/worker/:admin_id/:worker_id", signedIn, ctrl.WorkerDashboard)
	app.Post("/clock_action", signedIn, ctrl.ClockAction)
}

// AttendanceAdminRoutes mounts dashboard, listing and exports on the admin group.
func AttendanceAdminRoutes(admin fiber.Router, st store.Store, ledger *service.LedgerService) {
	ctrl := controller.NewAttendanceController(st, ledger)

	admin.Get("/dashboard", ctrl.AdminDashboard)
	admin.Get("/attendance", ctrl.Attendance)
	admin.Post("/export_attendance", ctrl.ExportCSV)
	admin.Post("/export_attendance_xlsx", ctrl.ExportXLSX)
}
