package helper

import "github.com/gofiber/fiber/v2"

// Locals keys set by the middlewares.
const (
	LocRequestID = "reqid"
	LocAdminID   = "admin_id"
	LocAdminName = "admin_name"
)

func localString(c *fiber.Ctx, key string) string {
	if v, ok := c.Locals(key).(string); ok {
		return v
	}
	return ""
}

func AdminIDFromLocals(c *fiber.Ctx) string { return localString(c, LocAdminID) }

func AdminNameFromLocals(c *fiber.Ctx) string { return localString(c, LocAdminName) }
