// Package schedule implements the recurring task scheduling core: working-day
// calendar policy, leave blocking, next-occurrence calculation, idempotent
// series reconciliation, the visibility gate and the due-today notifier.
//
// All calendar math happens in one configured location; instants cross the
// storage boundary in UTC.
package schedule

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Anchor is the fixed local wall-clock time at which generated occurrences are
// scheduled and at which same-day visibility and notification gates open.
// It was moved from 10:00 once already, so it must stay a named constant.
const (
	AnchorHour   = 19
	AnchorMinute = 0
)

// DefaultTimezone is used when no scheduler timezone is configured.
const DefaultTimezone = "Asia/Kolkata"

// HolidaySource reports whether a calendar date is a declared holiday.
type HolidaySource interface {
	IsHoliday(day time.Time) (bool, error)
}

// Calendar decides which dates are working days. A nil holiday source
// degrades to the Sunday-only rule; it never fails.
type Calendar struct {
	holidays HolidaySource
	loc      *time.Location
}

func NewCalendar(holidays HolidaySource, loc *time.Location) *Calendar {
	if loc == nil {
		var err error
		loc, err = time.LoadLocation(DefaultTimezone)
		if err != nil {
			loc = time.FixedZone("IST", 5*3600+1800)
		}
	}
	return &Calendar{holidays: holidays, loc: loc}
}

func (c *Calendar) Location() *time.Location { return c.loc }

// DayOf truncates an instant to local midnight.
func (c *Calendar) DayOf(t time.Time) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, c.loc)
}

// AtAnchor returns the anchor instant on the given date.
func (c *Calendar) AtAnchor(day time.Time) time.Time {
	lt := day.In(c.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), AnchorHour, AnchorMinute, 0, 0, c.loc)
}

// IsWorkingDay reports whether the date is neither a Sunday nor a holiday.
// A holiday lookup failure counts the day as working.
func (c *Calendar) IsWorkingDay(day time.Time) bool {
	lt := day.In(c.loc)
	if lt.Weekday() == time.Sunday {
		return false
	}
	if c.holidays == nil {
		return true
	}
	holiday, err := c.holidays.IsHoliday(c.DayOf(lt))
	if err != nil {
		log.Warn().Err(err).Time("day", lt).Msg("holiday lookup failed, treating day as working")
		return true
	}
	return !holiday
}

// NextWorkingDay returns the smallest date >= day that is a working day.
// Holiday sets are sparse, so the walk terminates quickly.
func (c *Calendar) NextWorkingDay(day time.Time) time.Time {
	d := c.DayOf(day)
	for !c.IsWorkingDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
