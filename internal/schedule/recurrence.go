package schedule

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brightops/taskcycle/internal/model"
)

// maxBlockedRoll caps the forward walk past non-working and leave-blocked
// days; a year of consecutive blocked days means broken data, not a schedule.
const maxBlockedRoll = 366

// Calculator computes the next occurrence of a recurring series. Every
// generated occurrence is pinned to the anchor time; only the first occurrence
// of a series may carry a user-chosen time, enforced at creation upstream.
type Calculator struct {
	cal    *Calendar
	oracle *LeaveOracle
}

func NewCalculator(cal *Calendar, oracle *LeaveOracle) *Calculator {
	return &Calculator{cal: cal, oracle: oracle}
}

// NextOccurrence steps the date component of prev by the recurrence rule,
// re-applies the anchor time, then rolls forward past non-working days and
// days the assignee is leave-blocked. The result is returned in UTC.
//
// An unknown mode is a data-quality problem upstream: it is logged and treated
// as non-recurring (no step), rolled to the next working day.
func (r *Calculator) NextOccurrence(prev time.Time, mode model.RecurrenceMode, frequency int, assigneeID int) time.Time {
	if frequency < 1 {
		frequency = 1
	}
	day := r.cal.DayOf(prev)
	switch mode {
	case model.ModeDaily:
		day = day.AddDate(0, 0, frequency)
	case model.ModeWeekly:
		day = day.AddDate(0, 0, 7*frequency)
	case model.ModeMonthly:
		day = day.AddDate(0, frequency, 0)
	case model.ModeYearly:
		day = day.AddDate(frequency, 0, 0)
	default:
		log.Warn().Str("mode", string(mode)).Msg("unknown recurrence mode, treating as non-recurring")
	}

	for i := 0; i < maxBlockedRoll; i++ {
		day = r.cal.NextWorkingDay(day)
		if r.oracle == nil || !r.oracle.BlockedOn(assigneeID, day) {
			break
		}
		day = day.AddDate(0, 0, 1)
	}
	return r.cal.AtAnchor(day).UTC()
}
