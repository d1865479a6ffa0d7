package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brightops/taskcycle/internal/model"
)

func oneOffAt(plannedAt time.Time) model.TaskInstance {
	return model.TaskInstance{ID: 1, AssigneeID: 7, Name: "file expense report", Mode: model.ModeOneOff, Frequency: 1, PlannedAt: plannedAt, Status: model.TaskPending}
}

func recurringAt(plannedAt time.Time) model.TaskInstance {
	return model.TaskInstance{ID: 2, AssigneeID: 7, Name: "submit timesheet", Mode: model.ModeWeekly, Frequency: 1, PlannedAt: plannedAt, Status: model.TaskPending}
}

func TestVisibleOneOff(t *testing.T) {
	cal := NewCalendar(nil, time.UTC)
	task := oneOffAt(time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC))

	// Not yet due.
	assert.False(t, cal.Visible(task, time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC), false))
	// Due a minute ago: visible immediately, no anchor gate.
	assert.True(t, cal.Visible(task, time.Date(2025, time.March, 10, 9, 1, 0, 0, time.UTC), false))
	// Past-due carry-over keeps showing.
	assert.True(t, cal.Visible(task, time.Date(2025, time.March, 11, 0, 1, 0, 0, time.UTC), false))
}

func TestVisibleRecurringAnchorFloor(t *testing.T) {
	cal := NewCalendar(nil, time.UTC)
	task := recurringAt(time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC))

	// Same day, before the anchor: hidden.
	assert.False(t, cal.Visible(task, time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC), false))
	// At the anchor the gate opens, even relative to planned_at.
	assert.True(t, cal.Visible(task, time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC), false))
	assert.True(t, cal.Visible(task, time.Date(2025, time.March, 10, 21, 0, 0, 0, time.UTC), false))
}

func TestVisibleRecurringPastAndFutureDates(t *testing.T) {
	cal := NewCalendar(nil, time.UTC)
	task := recurringAt(time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC))

	// Past-due recurring always shows, whatever the time of day.
	assert.True(t, cal.Visible(task, time.Date(2025, time.March, 12, 6, 0, 0, 0, time.UTC), false))
	// Future occurrence stays hidden.
	assert.False(t, cal.Visible(task, time.Date(2025, time.March, 9, 23, 0, 0, 0, time.UTC), false))
}

func TestVisibleTodayOnlyExcludesCarryOver(t *testing.T) {
	cal := NewCalendar(nil, time.UTC)
	task := recurringAt(time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC))

	assert.True(t, cal.Visible(task, time.Date(2025, time.March, 10, 19, 30, 0, 0, time.UTC), true))
	assert.False(t, cal.Visible(task, time.Date(2025, time.March, 11, 10, 0, 0, 0, time.UTC), true))

	oneOff := oneOffAt(time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC))
	assert.True(t, cal.Visible(oneOff, time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC), true))
	assert.False(t, cal.Visible(oneOff, time.Date(2025, time.March, 11, 9, 30, 0, 0, time.UTC), true))
}

// Once visible (with todayOnly=false), an instance never goes invisible again.
func TestVisibilityMonotonic(t *testing.T) {
	cal := NewCalendar(nil, time.UTC)
	tasks := []model.TaskInstance{
		oneOffAt(time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)),
		recurringAt(time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC)),
	}

	for _, task := range tasks {
		seen := false
		now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 96; i++ { // half-hour steps over two days
			visible := cal.Visible(task, now, false)
			if seen {
				assert.True(t, visible, "%s went invisible at %s", task.Name, now)
			}
			seen = seen || visible
			now = now.Add(30 * time.Minute)
		}
		assert.True(t, seen)
	}
}
