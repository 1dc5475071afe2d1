// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"fmt"
	"time"
)

// Layout is the stored clock format for clock_in / clock_out.
const Layout = "15:04:05"

// Tod is a time of day with the date and zone stripped.
type Tod struct{ time.Time }

// From takes HH:MM:SS from t and drops the rest.
func From(t time.Time) Tod {
	return Tod{
		Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
	}
}

// Parse accepts exactly "HH:MM:SS"; "9am" or "09:00" are rejected.
func Parse(s string) (Tod, error) {
	tt, err := time.Parse(Layout, s)
	if err != nil {
		return Tod{}, fmt.Errorf("tod: %w", err)
	}
	return Tod{Time: tt}, nil
}

func (t Tod) String() string {
	return t.Time.Format(Layout)
}

// HoursSince returns t minus start in hours. Negative when t is earlier.
func (t Tod) HoursSince(start Tod) float64 {
	return t.Time.Sub(start.Time).Hours()
}
