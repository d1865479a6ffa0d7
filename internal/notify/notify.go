// Package notify provides delivery sinks for task reminders. The scheduling
// core only decides that and when a reminder fires; sinks own the channel.
package notify

import (
	"github.com/rs/zerolog/log"

	"github.com/brightops/taskcycle/internal/model"
)

// LogSink writes reminders to the log. Default when no broker is configured;
// the production email pipeline sits behind the same interface.
type LogSink struct{}

func (LogSink) SendTaskReminder(task model.TaskInstance, assignee model.User) error {
	log.Info().
		Int("task_id", task.ID).
		Str("task", task.Name).
		Str("assignee", assignee.Email).
		Time("planned_at", task.PlannedAt).
		Msg("task reminder")
	return nil
}
