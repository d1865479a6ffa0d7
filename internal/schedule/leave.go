package schedule

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brightops/taskcycle/internal/model"
)

// LeaveSource returns the leave windows for an employee that overlap the
// given local calendar day. The scheduler never mutates leave data.
type LeaveSource interface {
	WindowsOverlappingDay(employeeID int, day time.Time) ([]model.LeaveWindow, error)
}

// LeaveOracle decides whether an employee is blocked by a pending or approved
// leave at a given instant. Lookup failures fail open (not blocked): the
// scheduler prefers over-notifying to silently starving a user of tasks.
type LeaveOracle struct {
	leaves LeaveSource
	cal    *Calendar
}

func NewLeaveOracle(leaves LeaveSource, cal *Calendar) *LeaveOracle {
	return &LeaveOracle{leaves: leaves, cal: cal}
}

// BlockedAt reports whether any blocking leave window contains the instant.
// Full-day windows block their entire local calendar days regardless of the
// stored timestamps; half-day windows block only the literal [start, end).
func (o *LeaveOracle) BlockedAt(employeeID int, at time.Time) bool {
	if o == nil || o.leaves == nil {
		return false
	}
	day := o.cal.DayOf(at)
	windows, err := o.leaves.WindowsOverlappingDay(employeeID, day)
	if err != nil {
		log.Warn().Err(err).Int("employee_id", employeeID).Msg("leave lookup failed, treating employee as not blocked")
		return false
	}
	for _, w := range windows {
		if !w.Blocking() {
			continue
		}
		if w.HalfDay {
			if !at.Before(w.StartAt) && at.Before(w.EndAt) {
				return true
			}
			continue
		}
		// Expand to full local days: start day 00:00 through the end of the end day.
		from := o.cal.DayOf(w.StartAt)
		until := o.cal.DayOf(w.EndAt).AddDate(0, 0, 1)
		if !at.Before(from) && at.Before(until) {
			return true
		}
	}
	return false
}

// BlockedOn evaluates BlockedAt at the date's anchor instant, which is the
// only moment the scheduler ever acts on a date.
func (o *LeaveOracle) BlockedOn(employeeID int, day time.Time) bool {
	if o == nil {
		return false
	}
	return o.BlockedAt(employeeID, o.cal.AtAnchor(day))
}
