package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brightops/taskcycle/internal/model"
)

// NotifierStore is the slice of the persistence collaborator the notifier
// reads from.
type NotifierStore interface {
	PendingDueBetween(start, end time.Time) ([]model.TaskInstance, error)
	UserByID(id int) (*model.User, error)
}

// Sink delivers a single task reminder. Message rendering and routing live
// behind it; the notifier only decides that and when a reminder fires.
type Sink interface {
	SendTaskReminder(task model.TaskInstance, assignee model.User) error
}

// MarkerStore holds the short-lived per-instance-per-day de-dup markers.
// Losing a marker risks a duplicate reminder, never a missed one.
type MarkerStore interface {
	Seen(ctx context.Context, key string) bool
	Mark(ctx context.Context, key string, ttl time.Duration) error
}

// DispatchCounts reports how many reminders a run dispatched, by task kind.
type DispatchCounts struct {
	Recurring int `json:"recurring"`
	OneOff    int `json:"one_off"`
}

// Notifier fans out at most one reminder per due task per day, never before
// the anchor time. Safe to invoke on a tighter polling schedule than daily.
type Notifier struct {
	store   NotifierStore
	sink    Sink
	markers MarkerStore
	cal     *Calendar

	// Now is the clock, overridable in tests.
	Now func() time.Time
}

func NewNotifier(store NotifierStore, sink Sink, markers MarkerStore, cal *Calendar) *Notifier {
	return &Notifier{store: store, sink: sink, markers: markers, cal: cal, Now: time.Now}
}

func reminderKey(t model.TaskInstance, day time.Time) string {
	return fmt.Sprintf("task:reminder:%d:%s", t.ID, day.Format("2006-01-02"))
}

// Run selects every pending task due today and dispatches one reminder each.
// A dispatch failure is isolated to its task and leaves the marker unset so
// the next invocation within the day retries it.
func (n *Notifier) Run(ctx context.Context) (DispatchCounts, error) {
	var counts DispatchCounts

	local := n.Now().In(n.cal.Location())
	today := n.cal.DayOf(local)
	if local.Before(n.cal.AtAnchor(today)) {
		log.Info().Time("now", local).Msg("before anchor time, skipping reminder fan-out")
		return counts, nil
	}
	tomorrow := today.AddDate(0, 0, 1)

	due, err := n.store.PendingDueBetween(today.UTC(), tomorrow.UTC())
	if err != nil {
		log.Error().Err(err).Msg("due-today query failed")
		return counts, err
	}

	// Markers expire past local midnight so they clear themselves next day.
	ttl := tomorrow.Sub(local) + time.Hour

	for _, task := range due {
		key := reminderKey(task, today)
		if n.markers.Seen(ctx, key) {
			continue
		}
		assignee, err := n.store.UserByID(task.AssigneeID)
		if err != nil {
			log.Warn().Err(err).Int("task_id", task.ID).Int("assignee_id", task.AssigneeID).
				Msg("assignee lookup failed, skipping reminder")
			continue
		}
		if err := n.sink.SendTaskReminder(task, *assignee); err != nil {
			log.Error().Err(err).Int("task_id", task.ID).Msg("reminder dispatch failed")
			continue
		}
		if err := n.markers.Mark(ctx, key, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("marker write failed")
		}
		if task.Recurring() {
			counts.Recurring++
		} else {
			counts.OneOff++
		}
	}

	log.Info().Int("due", len(due)).Int("recurring", counts.Recurring).Int("one_off", counts.OneOff).
		Msg("reminder fan-out done")
	return counts, nil
}
