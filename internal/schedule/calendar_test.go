package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeHolidays struct {
	days map[string]bool
	err  error
}

func (f fakeHolidays) IsHoliday(day time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.days[day.Format("2006-01-02")], nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsWorkingDay(t *testing.T) {
	cal := NewCalendar(fakeHolidays{days: map[string]bool{"2025-01-14": true}}, time.UTC)

	assert.True(t, cal.IsWorkingDay(date(2025, time.January, 6)), "Monday is a working day")
	assert.True(t, cal.IsWorkingDay(date(2025, time.January, 4)), "Saturday is a working day")
	assert.False(t, cal.IsWorkingDay(date(2025, time.January, 5)), "Sunday is never a working day")
	assert.False(t, cal.IsWorkingDay(date(2025, time.January, 14)), "declared holiday")
}

func TestIsWorkingDayWithoutHolidaySource(t *testing.T) {
	// No holiday collaborator configured: degrade to the Sunday-only policy.
	cal := NewCalendar(nil, time.UTC)

	assert.True(t, cal.IsWorkingDay(date(2025, time.January, 14)))
	assert.False(t, cal.IsWorkingDay(date(2025, time.January, 5)))
}

func TestIsWorkingDayHolidayLookupFailure(t *testing.T) {
	cal := NewCalendar(fakeHolidays{err: errors.New("store down")}, time.UTC)

	assert.True(t, cal.IsWorkingDay(date(2025, time.January, 14)), "lookup failure counts the day as working")
}

func TestNextWorkingDay(t *testing.T) {
	cal := NewCalendar(fakeHolidays{days: map[string]bool{"2025-01-06": true}}, time.UTC)

	// Already working: unchanged.
	assert.Equal(t, date(2025, time.January, 7), cal.NextWorkingDay(date(2025, time.January, 7)))
	// Sunday then a holiday Monday: lands on Tuesday.
	assert.Equal(t, date(2025, time.January, 7), cal.NextWorkingDay(date(2025, time.January, 5)))
}

func TestAtAnchor(t *testing.T) {
	cal := NewCalendar(nil, time.UTC)

	at := cal.AtAnchor(date(2025, time.March, 10))
	assert.Equal(t, AnchorHour, at.Hour())
	assert.Equal(t, AnchorMinute, at.Minute())
	assert.Equal(t, date(2025, time.March, 10), cal.DayOf(at))
}
