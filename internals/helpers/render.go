package helper

import (
	"github.com/gofiber/fiber/v2"
)

// Layout wraps every page.
const Layout = "layouts/main"

// Render draws view inside the main layout, adding the signed-in admin when known.
func Render(c *fiber.Ctx, view string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Admin"]; !ok {
		if id := AdminIDFromLocals(c); id != "" {
			data["Admin"] = fiber.Map{"ID": id, "Name": AdminNameFromLocals(c)}
		}
	}
	if reqID, ok := c.Locals(LocRequestID).(string); ok {
		data["RequestID"] = reqID
	}
	return c.Render(view, data, Layout)
}

// RenderWithError re-renders a form with an inline message.
func RenderWithError(c *fiber.Ctx, status int, view, message string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Error"] = message
	return Render(c.Status(status), view, data)
}

// RenderErrorPage is the fallback page for anything a handler did not handle.
func RenderErrorPage(c *fiber.Ctx, status int, message string) error {
	return RenderWithError(c, status, "error", message, fiber.Map{"Status": status})
}
