package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightops/taskcycle/internal/model"
)

type notifyStore struct {
	tasks []model.TaskInstance
	err   error
}

func (s *notifyStore) PendingDueBetween(start, end time.Time) ([]model.TaskInstance, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []model.TaskInstance
	for _, t := range s.tasks {
		if !t.PlannedAt.Before(start) && t.PlannedAt.Before(end) && t.Status == model.TaskPending {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *notifyStore) UserByID(id int) (*model.User, error) {
	return &model.User{ID: id, Email: "employee@example.com"}, nil
}

type captureSink struct {
	sent    []int
	failIDs map[int]bool
}

func (s *captureSink) SendTaskReminder(task model.TaskInstance, assignee model.User) error {
	if s.failIDs[task.ID] {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, task.ID)
	return nil
}

func dueToday() []model.TaskInstance {
	return []model.TaskInstance{
		recurringAt(time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC)),
		oneOffAt(time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)),
		// Due tomorrow: out of today's bounds.
		{ID: 3, AssigneeID: 7, Name: "prep review", Mode: model.ModeOneOff, Frequency: 1,
			PlannedAt: time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC), Status: model.TaskPending},
	}
}

func newTestNotifier(store NotifierStore, sink Sink, now time.Time) *Notifier {
	n := NewNotifier(store, sink, NewMemoryMarkers(), NewCalendar(nil, time.UTC))
	n.Now = func() time.Time { return now }
	return n
}

func TestNotifierSkipsBeforeAnchor(t *testing.T) {
	sink := &captureSink{}
	n := newTestNotifier(&notifyStore{tasks: dueToday()}, sink, time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC))

	counts, err := n.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DispatchCounts{}, counts)
	assert.Empty(t, sink.sent, "never send before the anchor time")
}

func TestNotifierDispatchesOncePerDay(t *testing.T) {
	sink := &captureSink{}
	now := time.Date(2025, time.March, 10, 19, 5, 0, 0, time.UTC)
	n := newTestNotifier(&notifyStore{tasks: dueToday()}, sink, now)

	counts, err := n.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DispatchCounts{Recurring: 1, OneOff: 1}, counts)
	assert.Len(t, sink.sent, 2)

	// Second invocation the same day: everything already marked.
	counts, err = n.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DispatchCounts{}, counts)
	assert.Len(t, sink.sent, 2)
}

func TestNotifierRetriesFailedDispatchSameDay(t *testing.T) {
	sink := &captureSink{failIDs: map[int]bool{2: true}}
	now := time.Date(2025, time.March, 10, 19, 5, 0, 0, time.UTC)
	n := newTestNotifier(&notifyStore{tasks: dueToday()}, sink, now)

	counts, err := n.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DispatchCounts{OneOff: 1}, counts, "failure for one task must not abort the rest")

	// The failed task's marker was not set, so the next run retries only it.
	sink.failIDs = nil
	counts, err = n.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DispatchCounts{Recurring: 1}, counts)
}

func TestNotifierPropagatesQueryFailure(t *testing.T) {
	sink := &captureSink{}
	now := time.Date(2025, time.March, 10, 19, 5, 0, 0, time.UTC)
	n := newTestNotifier(&notifyStore{err: errors.New("db down")}, sink, now)

	_, err := n.Run(context.Background())
	assert.Error(t, err)
	assert.Empty(t, sink.sent)
}
