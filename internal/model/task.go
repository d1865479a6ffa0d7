package model

import "time"

// RecurrenceMode is the closed set of supported repeat cadences. OneOff marks
// delegation-style tasks that never regenerate.
type RecurrenceMode string

const (
	ModeOneOff  RecurrenceMode = "none"
	ModeDaily   RecurrenceMode = "daily"
	ModeWeekly  RecurrenceMode = "weekly"
	ModeMonthly RecurrenceMode = "monthly"
	ModeYearly  RecurrenceMode = "yearly"
)

// Valid reports whether m is one of the known recurring cadences.
func (m RecurrenceMode) Valid() bool {
	switch m {
	case ModeDaily, ModeWeekly, ModeMonthly, ModeYearly:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// TaskInstance is one concrete occurrence of a task. Recurring occurrences are
// grouped into a series by SeriesKey; the series itself is never stored.
type TaskInstance struct {
	ID          int            `db:"id" json:"id"`
	AssigneeID  int            `db:"assignee_id" json:"assignee_id"`
	Name        string         `db:"name" json:"name"`
	Description *string        `db:"description" json:"description,omitempty"`
	GroupName   string         `db:"group_name" json:"group_name"`
	Mode        RecurrenceMode `db:"recurrence" json:"recurrence"`
	Frequency   int            `db:"frequency" json:"frequency"`
	PlannedAt   time.Time      `db:"planned_at" json:"planned_at"`
	Status      TaskStatus     `db:"status" json:"status"`
	CompletedAt *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
	CreatedBy   int            `db:"created_by" json:"created_by"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// Recurring reports whether the instance belongs to a repeating series.
func (t TaskInstance) Recurring() bool { return t.Mode.Valid() }

// SeriesKey identifies a task series: every instance sharing these fields is
// the same logical series.
type SeriesKey struct {
	AssigneeID int            `db:"assignee_id"`
	Name       string         `db:"name"`
	Mode       RecurrenceMode `db:"recurrence"`
	Frequency  int            `db:"frequency"`
	GroupName  string         `db:"group_name"`
}

// Series returns the series key of the instance.
func (t TaskInstance) Series() SeriesKey {
	return SeriesKey{
		AssigneeID: t.AssigneeID,
		Name:       t.Name,
		Mode:       t.Mode,
		Frequency:  t.Frequency,
		GroupName:  t.GroupName,
	}
}
