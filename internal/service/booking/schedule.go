package booking

import (
	"strings"
	"time"

	"github.com/beautybox/salon-api/internal/model"
)

// scheduleSeparator is the literal the booking form puts between the date and
// the time ("2026-09-05 a las 16:30").
const scheduleSeparator = " a las "

// fallbackTime is the slot used when the preference cannot be parsed.
const fallbackTime = "10:00"

// Schedule is a parsed time preference. Parsed reports whether the preference
// round-tripped through the expected format or the fallback was used.
type Schedule struct {
	Date   string
	Time   string
	Parsed bool
}

// ParseSchedule splits a free-text time preference into date and time. Both
// halves must validate against the sheet layouts; any deviation falls back to
// today at 10:00 rather than erroring, since the preference is advisory text
// typed by the client.
func ParseSchedule(preference string) Schedule {
	parts := strings.SplitN(preference, scheduleSeparator, 2)
	if len(parts) == 2 {
		date := strings.TrimSpace(parts[0])
		hour := strings.TrimSpace(parts[1])
		if _, err := time.Parse(model.DateLayout, date); err == nil {
			if _, err := time.Parse(model.TimeLayout, hour); err == nil {
				return Schedule{Date: date, Time: hour, Parsed: true}
			}
		}
	}
	return Schedule{
		Date:   time.Now().Format(model.DateLayout),
		Time:   fallbackTime,
		Parsed: false,
	}
}

func nowTimestamp() string {
	return time.Now().Format(time.RFC3339)
}
