package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brightops/taskcycle/internal/model"
)

func TestNextOccurrenceWeekly(t *testing.T) {
	cal := NewCalendar(fakeHolidays{days: map[string]bool{}}, time.UTC)
	calc := NewCalculator(cal, nil)

	// Monday 2025-01-06 19:00 -> next Monday, same anchor.
	prev := time.Date(2025, time.January, 6, 19, 0, 0, 0, time.UTC)
	next := calc.NextOccurrence(prev, model.ModeWeekly, 1, 7)
	assert.Equal(t, time.Date(2025, time.January, 13, 19, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrenceWeeklyRollsPastHoliday(t *testing.T) {
	cal := NewCalendar(fakeHolidays{days: map[string]bool{"2025-01-13": true}}, time.UTC)
	calc := NewCalculator(cal, nil)

	prev := time.Date(2025, time.January, 6, 19, 0, 0, 0, time.UTC)
	next := calc.NextOccurrence(prev, model.ModeWeekly, 1, 7)
	assert.Equal(t, time.Date(2025, time.January, 14, 19, 0, 0, 0, time.UTC), next, "holiday Monday rolls to Tuesday, still anchored")
}

func TestNextOccurrenceRollsPastLeaveBlockedDays(t *testing.T) {
	cal := NewCalendar(nil, time.UTC)
	oracle := NewLeaveOracle(fakeLeaves{windows: []model.LeaveWindow{{
		EmployeeID: 7,
		Status:     model.LeaveApproved,
		StartAt:    time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC),
		EndAt:      time.Date(2025, time.January, 13, 23, 59, 59, 0, time.UTC),
	}}}, cal)
	calc := NewCalculator(cal, oracle)

	prev := time.Date(2025, time.January, 6, 19, 0, 0, 0, time.UTC)
	next := calc.NextOccurrence(prev, model.ModeWeekly, 1, 7)
	assert.Equal(t, time.Date(2025, time.January, 14, 19, 0, 0, 0, time.UTC), next)
}

// Every valid mode must produce a strictly later instant, land on a working
// day, and carry the anchor time exactly.
func TestNextOccurrenceInvariants(t *testing.T) {
	cal := NewCalendar(fakeHolidays{days: map[string]bool{"2025-02-04": true}}, time.UTC)
	calc := NewCalculator(cal, nil)

	starts := []time.Time{
		time.Date(2025, time.January, 6, 19, 0, 0, 0, time.UTC),
		time.Date(2025, time.January, 31, 8, 30, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC),
	}
	cases := []struct {
		mode model.RecurrenceMode
		freq int
	}{
		{model.ModeDaily, 1},
		{model.ModeDaily, 3},
		{model.ModeWeekly, 1},
		{model.ModeWeekly, 2},
		{model.ModeMonthly, 1},
		{model.ModeMonthly, 6},
		{model.ModeYearly, 1},
	}

	for _, prev := range starts {
		for _, tc := range cases {
			next := calc.NextOccurrence(prev, tc.mode, tc.freq, 7)

			assert.True(t, next.After(prev), "%s/%d from %s must move forward", tc.mode, tc.freq, prev)
			assert.True(t, cal.IsWorkingDay(next), "%s/%d from %s must land on a working day", tc.mode, tc.freq, prev)
			local := next.In(cal.Location())
			assert.Equal(t, AnchorHour, local.Hour(), "anchor hour pinned")
			assert.Equal(t, AnchorMinute, local.Minute(), "anchor minute pinned")
		}
	}
}

func TestNextOccurrenceFrequencyBelowOne(t *testing.T) {
	cal := NewCalendar(nil, time.UTC)
	calc := NewCalculator(cal, nil)

	prev := time.Date(2025, time.January, 6, 19, 0, 0, 0, time.UTC)
	next := calc.NextOccurrence(prev, model.ModeDaily, 0, 7)
	assert.Equal(t, time.Date(2025, time.January, 7, 19, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrenceUnknownMode(t *testing.T) {
	cal := NewCalendar(nil, time.UTC)
	calc := NewCalculator(cal, nil)

	// Unknown mode: no step, rolled to the next working day at the anchor.
	prev := time.Date(2025, time.January, 5, 10, 0, 0, 0, time.UTC) // a Sunday
	next := calc.NextOccurrence(prev, model.RecurrenceMode("fortnightly"), 2, 7)
	assert.Equal(t, time.Date(2025, time.January, 6, 19, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrenceMonthlyCalendarArithmetic(t *testing.T) {
	cal := NewCalendar(nil, time.UTC)
	calc := NewCalculator(cal, nil)

	// Monthly steps use calendar months, not fixed 30-day blocks.
	prev := time.Date(2025, time.March, 15, 19, 0, 0, 0, time.UTC)
	next := calc.NextOccurrence(prev, model.ModeMonthly, 1, 7)
	assert.Equal(t, time.April, next.Month())
	assert.Equal(t, 15, next.Day())
}
