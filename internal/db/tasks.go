package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/brightops/taskcycle/internal/model"
	"github.com/brightops/taskcycle/internal/schedule"
)

const taskColumns = `
	id, assignee_id, name, description, group_name, recurrence, frequency,
	planned_at, status, completed_at, created_by, created_at, updated_at`

// CreateTask inserts a one-off task or the first occurrence of a series.
func CreateTask(t model.TaskInstance) (model.TaskInstance, error) {
	var out model.TaskInstance
	const q = `
	INSERT INTO tasks
	  (assignee_id, name, description, group_name, recurrence, frequency,
	   planned_at, status, created_by, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,'pending',$8,now(),now())
	RETURNING ` + taskColumns + `;`
	err := DB.Get(&out, q,
		t.AssigneeID, t.Name, t.Description, t.GroupName, t.Mode, t.Frequency,
		t.PlannedAt.UTC(), t.CreatedBy)
	if err != nil {
		log.Error().Err(err).Str("name", t.Name).Msg("CreateTask failed")
		return model.TaskInstance{}, err
	}
	return out, nil
}

// GetTaskByID fetches one task instance. Returns sql.ErrNoRows when missing.
func GetTaskByID(id int) (*model.TaskInstance, error) {
	var t model.TaskInstance
	err := DB.Get(&t, `SELECT `+taskColumns+` FROM tasks WHERE id = $1;`, id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Int("task_id", id).Msg("GetTaskByID failed")
		}
		return nil, err
	}
	return &t, nil
}

// CompleteTask transitions a pending instance to completed. Completed
// instances are never moved back.
func CompleteTask(id int, at time.Time) error {
	res, err := DB.Exec(`
	UPDATE tasks
	   SET status = 'completed', completed_at = $2, updated_at = now()
	 WHERE id = $1 AND status = 'pending';`, id, at.UTC())
	if err != nil {
		log.Error().Err(err).Int("task_id", id).Msg("CompleteTask failed")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("task is not pending")
	}
	return nil
}

// PendingForAssignee lists an employee's pending instances, oldest first.
func PendingForAssignee(assigneeID int) ([]model.TaskInstance, error) {
	var out []model.TaskInstance
	const q = `
	SELECT ` + taskColumns + `
	  FROM tasks
	 WHERE assignee_id = $1 AND status = 'pending'
	 ORDER BY planned_at;`
	if err := DB.Select(&out, q, assigneeID); err != nil {
		log.Error().Err(err).Int("assignee_id", assigneeID).Msg("PendingForAssignee failed")
		return nil, err
	}
	return out, nil
}

// RecurringSeriesKeys lists every distinct recurring series present in the
// task table, derived by grouping; the series itself is never stored.
func RecurringSeriesKeys() ([]model.SeriesKey, error) {
	var out []model.SeriesKey
	const q = `
	SELECT DISTINCT assignee_id, name, recurrence, frequency, group_name
	  FROM tasks
	 WHERE recurrence <> 'none';`
	if err := DB.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("RecurringSeriesKeys failed")
		return nil, err
	}
	return out, nil
}

// PendingInSeries lists the pending instances of one series.
func PendingInSeries(key model.SeriesKey) ([]model.TaskInstance, error) {
	var out []model.TaskInstance
	const q = `
	SELECT ` + taskColumns + `
	  FROM tasks
	 WHERE assignee_id = $1 AND name = $2 AND recurrence = $3
	   AND frequency = $4 AND group_name = $5 AND status = 'pending';`
	if err := DB.Select(&out, q, key.AssigneeID, key.Name, key.Mode, key.Frequency, key.GroupName); err != nil {
		log.Error().Err(err).Interface("series", key).Msg("PendingInSeries failed")
		return nil, err
	}
	return out, nil
}

// LatestCompleted returns the completed instance of a series with the latest
// planned_at, or nil when the series has no completed instance yet.
func LatestCompleted(key model.SeriesKey) (*model.TaskInstance, error) {
	var t model.TaskInstance
	const q = `
	SELECT ` + taskColumns + `
	  FROM tasks
	 WHERE assignee_id = $1 AND name = $2 AND recurrence = $3
	   AND frequency = $4 AND group_name = $5 AND status = 'completed'
	 ORDER BY planned_at DESC
	 LIMIT 1;`
	err := DB.Get(&t, q, key.AssigneeID, key.Name, key.Mode, key.Frequency, key.GroupName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Interface("series", key).Msg("LatestCompleted failed")
		return nil, err
	}
	return &t, nil
}

// CreateOccurrence inserts the next pending occurrence of a series, carrying
// every non-temporal field forward from the completed seed. A hit on the
// one_pending_per_series unique index maps to schedule.ErrDuplicatePending.
func CreateOccurrence(seed model.TaskInstance, plannedAt time.Time) (*model.TaskInstance, error) {
	var out model.TaskInstance
	const q = `
	INSERT INTO tasks
	  (assignee_id, name, description, group_name, recurrence, frequency,
	   planned_at, status, created_by, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,'pending',$8,now(),now())
	RETURNING ` + taskColumns + `;`
	err := DB.Get(&out, q,
		seed.AssigneeID, seed.Name, seed.Description, seed.GroupName, seed.Mode,
		seed.Frequency, plannedAt.UTC(), seed.CreatedBy)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, schedule.ErrDuplicatePending
		}
		log.Error().Err(err).Interface("series", seed.Series()).Msg("CreateOccurrence failed")
		return nil, err
	}
	return &out, nil
}

// PendingDueBetween lists all pending instances with planned_at in [start, end).
func PendingDueBetween(start, end time.Time) ([]model.TaskInstance, error) {
	var out []model.TaskInstance
	const q = `
	SELECT ` + taskColumns + `
	  FROM tasks
	 WHERE status = 'pending' AND planned_at >= $1 AND planned_at < $2
	 ORDER BY planned_at;`
	if err := DB.Select(&out, q, start.UTC(), end.UTC()); err != nil {
		log.Error().Err(err).Msg("PendingDueBetween failed")
		return nil, err
	}
	return out, nil
}
