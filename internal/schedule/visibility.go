package schedule

import (
	"time"

	"github.com/brightops/taskcycle/internal/model"
)

// Visible reports whether a task instance should be shown (or notified) at
// the given instant.
//
// Recurring instances past their planned date always show. On the planned
// date itself the anchor time acts as a floor: the instance opens at the
// anchor even when its own planned time-of-day is later. One-off instances
// are visible as soon as their planned instant has passed, with no anchor
// gate. todayOnly additionally restricts to instances planned on now's date,
// excluding past-due carry-over.
func (c *Calendar) Visible(t model.TaskInstance, now time.Time, todayOnly bool) bool {
	planned := t.PlannedAt.In(c.loc)
	local := now.In(c.loc)
	plannedDay := c.DayOf(planned)
	today := c.DayOf(local)

	if todayOnly && !plannedDay.Equal(today) {
		return false
	}

	if !t.Recurring() {
		return !local.Before(planned)
	}

	switch {
	case plannedDay.Before(today):
		return true
	case plannedDay.Equal(today):
		return !local.Before(planned) || !local.Before(c.AtAnchor(today))
	default:
		return false
	}
}
