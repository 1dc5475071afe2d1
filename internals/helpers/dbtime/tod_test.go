package dbtime

import (
	"testing"
	"time"
)

func TestParseIsStrict(t *testing.T) {
	for _, s := range []string{"9am", "09:00", "", "25:00:00", " 09:00:00"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) should fail", s)
		}
	}
	tod, err := Parse("07:05:09")
	if err != nil || tod.String() != "07:05:09" {
		t.Fatalf("Parse round trip: %v %v", tod, err)
	}
}

func TestHoursSince(t *testing.T) {
	in, _ := Parse("09:00:00")
	out, _ := Parse("17:30:00")
	if got := out.HoursSince(in); got != 8.5 {
		t.Fatalf("hours = %v, want 8.5", got)
	}
}

func TestTodayUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	now := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	if got := Today(now, loc); got != "2024-03-02" {
		t.Fatalf("Today = %s", got)
	}
	if From(now.In(loc)).String() != "03:00:00" {
		t.Fatalf("From dropped the wrong fields")
	}
}
