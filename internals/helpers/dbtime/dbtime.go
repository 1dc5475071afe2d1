// file: internals/helpers/dbtime/dbtime.go
package dbtime

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Locals key set by the timezone middleware.
const LocAppLoc = "app_loc"

// Clock is the wall-clock source; tests swap it for a fixed time.
type Clock func() time.Time

// LoadLocation resolves an IANA name. "" and "Local" mean the host zone;
// an unknown name falls back to the host zone with a log line.
func LoadLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "Local") {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[WARN] unknown timezone %q, using host zone: %v", name, err)
		return time.Local
	}
	return loc
}

// GetLocation prefers the zone placed in locals, then the host zone.
func GetLocation(c *fiber.Ctx) *time.Location {
	if c != nil {
		if loc, ok := c.Locals(LocAppLoc).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return time.Local
}

// Today formats now as YYYY-MM-DD in loc.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format("2006-01-02")
}

// NowIn returns the clock reading in loc.
func NowIn(clock Clock, loc *time.Location) time.Time {
	if clock == nil {
		clock = time.Now
	}
	return clock().In(loc)
}
