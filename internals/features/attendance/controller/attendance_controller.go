// file: internals/features/attendance/controller/attendance_controller.go
package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"worknest_backend/internals/features/attendance/dto"
	"worknest_backend/internals/features/attendance/service"
	workerRepo "worknest_backend/internals/features/workers/repository"
	workerService "worknest_backend/internals/features/workers/service"
	helper "worknest_backend/internals/helpers"
	"worknest_backend/internals/middlewares/auth"
	"worknest_backend/internals/store"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceController struct {
	Store    store.Store
	Ledger   *service.LedgerService
	Export   *service.ExportService
	Validate *validator.Validate
}

func NewAttendanceController(st store.Store, ledger *service.LedgerService) *AttendanceController {
	return &AttendanceController{
		Store:    st,
		Ledger:   ledger,
		Export:   service.NewExportService(ledger),
		Validate: validator.New(),
	}
}

/* ========================== WORKER ========================== */

// GET /worker/:admin_id/:worker_id
func (ac *AttendanceController) WorkerDashboard(c *fiber.Ctx) error {
	adminID, workerID := c.Params("admin_id"), c.Params("worker_id")
	if !auth.PrincipalFromLocals(c).CanAccessWorker(adminID, workerID) {
		return c.Redirect("/")
	}

	ctx := c.UserContext()
	w, err := workerRepo.FindWorker(ctx, ac.Store, adminID, workerID)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidPath) {
		return c.Redirect("/")
	}
	if err != nil {
		log.Printf("[ERROR] load worker %s/%s: %v", adminID, workerID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load worker")
	}

	today := ac.Ledger.Today()
	rec, ok := w.DayRecord(today)
	lastAction := service.GetLastAction(nil)
	if ok {
		lastAction = service.GetLastAction(&rec)
	}

	return helper.Render(c, "worker_dashboard", fiber.Map{
		"Title":      w.WorkerName,
		"Worker":     w,
		"WorkerID":   workerID,
		"AdminID":    adminID,
		"Today":      today,
		"LastAction": lastAction,
	})
}

// POST /clock_action
func (ac *AttendanceController) ClockAction(c *fiber.Ctx) error {
	var req dto.ClockActionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, helper.ValidationMessage(err))
	}
	if !auth.PrincipalFromLocals(c).CanAccessWorker(req.AdminID, req.WorkerID) {
		return c.Redirect("/")
	}

	_, err := ac.Ledger.RecordClock(c.UserContext(), req.AdminID, req.WorkerID, req.Action)
	if errors.Is(err, workerService.ErrWorkerNotFound) {
		return c.Redirect("/")
	}
	if err != nil {
		log.Printf("[ERROR] clock %s worker=%s: %v", req.Action, req.WorkerID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record clock action")
	}
	return c.Redirect(fmt.Sprintf("/worker/%s/%s", req.AdminID, req.WorkerID))
}

/* ========================== ADMIN ========================== */

// GET /admin/dashboard
func (ac *AttendanceController) AdminDashboard(c *fiber.Ctx) error {
	today := ac.Ledger.Today()
	stats, err := ac.Ledger.DashboardStats(c.UserContext(), helper.AdminIDFromLocals(c), today)
	if err != nil {
		log.Printf("[ERROR] dashboard stats: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}
	return helper.Render(c, "admin_dashboard", fiber.Map{
		"Title": "Dashboard",
		"Today": today,
		"Stats": stats,
	})
}

func (ac *AttendanceController) resolveDate(raw string) (string, error) {
	f := dto.DateFilter{Date: raw}
	if err := ac.Validate.Struct(f); err != nil {
		return "", err
	}
	if f.Date == "" {
		return ac.Ledger.Today(), nil
	}
	return f.Date, nil
}

// GET /admin/attendance?date=YYYY-MM-DD
func (ac *AttendanceController) Attendance(c *fiber.Ctx) error {
	date, err := ac.resolveDate(c.Query("date"))
	if err != nil {
		return helper.RenderWithError(c, fiber.StatusBadRequest, "admin_attendance", helper.ValidationMessage(err), fiber.Map{
			"Title":      "Attendance",
			"FilterDate": ac.Ledger.Today(),
		})
	}

	rows, err := ac.Ledger.ListAttendance(c.UserContext(), helper.AdminIDFromLocals(c), date)
	if err != nil {
		log.Printf("[ERROR] list attendance %s: %v", date, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load attendance")
	}
	return helper.Render(c, "admin_attendance", fiber.Map{
		"Title":      "Attendance",
		"Attendance": rows,
		"FilterDate": date,
	})
}

// POST /admin/export_attendance
func (ac *AttendanceController) ExportCSV(c *fiber.Ctx) error {
	return ac.export(c, "csv", "text/csv; charset=utf-8", ac.Export.ExportCSV)
}

// POST /admin/export_attendance_xlsx
func (ac *AttendanceController) ExportXLSX(c *fiber.Ctx) error {
	return ac.export(c, "xlsx", xlsxContentType, ac.Export.ExportXLSX)
}

// export sends the file, or goes back to the attendance page when the date has no rows.
func (ac *AttendanceController) export(
	c *fiber.Ctx,
	ext, contentType string,
	build func(ctx context.Context, adminID, date string) ([]byte, error),
) error {
	date, err := ac.resolveDate(c.FormValue("date"))
	if err != nil {
		return c.Redirect("/admin/attendance")
	}

	data, err := build(c.UserContext(), helper.AdminIDFromLocals(c), date)
	if errors.Is(err, service.ErrNoAttendanceRows) {
		return c.Redirect("/admin/attendance?date=" + url.QueryEscape(date))
	}
	if err != nil {
		log.Printf("[ERROR] export %s %s: %v", ext, date, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to export attendance")
	}

	c.Attachment(fmt.Sprintf("attendance_%s.%s", date, ext))
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}
