// ABOUTME: Journey clock: derives program day number and phase from a start date.
// ABOUTME: Days are counted between local midnights and clamped to the 90-day program.
package program

import (
	"time"

	"github.com/harperreed/recomp/internal/models"
)

// TotalDays is the length of the program.
const TotalDays = 90

// DayNumber returns the 1-based program day for now, given a journey start.
// Both instants are truncated to midnight in loc before counting, so the
// result only changes when the calendar day changes. The result is clamped
// to [1, TotalDays].
func DayNumber(start, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	s := start.In(loc)
	n := now.In(loc)

	// Compare as UTC calendar dates so DST transitions never shorten a day.
	sDate := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	nDate := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	days := int(nDate.Sub(sDate).Hours()/24) + 1

	return clamp(days, 1, TotalDays)
}

// PhaseFor returns the program phase for a day number.
func PhaseFor(day int) models.Phase {
	switch {
	case day <= 30:
		return models.PhaseFoundation
	case day <= 60:
		return models.PhaseBuild
	default:
		return models.PhaseOptimize
	}
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, loc)
}

// DaysRemaining is the number of program days left after day.
func DaysRemaining(day int) int {
	return max(0, TotalDays-day)
}

// ProgressPercent is the rounded share of the program covered by day.
func ProgressPercent(day int) int {
	return Percent(day, TotalDays)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Percent returns round(part/whole*100), or 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (part*200 + whole) / (whole * 2)
}
