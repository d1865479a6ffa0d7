package db

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brightops/taskcycle/internal/model"
)

const leaveColumns = `
	id, employee_id, status, start_at, end_at, half_day, reason, created_at, updated_at`

// CreateLeave inserts a new leave request in pending status.
func CreateLeave(w model.LeaveWindow) (model.LeaveWindow, error) {
	var out model.LeaveWindow
	const q = `
	INSERT INTO leaves (employee_id, status, start_at, end_at, half_day, reason, created_at, updated_at)
	VALUES ($1,'pending',$2,$3,$4,$5,now(),now())
	RETURNING ` + leaveColumns + `;`
	err := DB.Get(&out, q, w.EmployeeID, w.StartAt.UTC(), w.EndAt.UTC(), w.HalfDay, w.Reason)
	if err != nil {
		log.Error().Err(err).Int("employee_id", w.EmployeeID).Msg("CreateLeave failed")
		return model.LeaveWindow{}, err
	}
	return out, nil
}

// SetLeaveStatus moves a pending leave request to approved or rejected.
func SetLeaveStatus(id int, status model.LeaveStatus) error {
	res, err := DB.Exec(`
	UPDATE leaves
	   SET status = $2, updated_at = now()
	 WHERE id = $1 AND status = 'pending';`, id, status)
	if err != nil {
		log.Error().Err(err).Int("leave_id", id).Msg("SetLeaveStatus failed")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("leave is not pending")
	}
	return nil
}

// ListLeaves lists an employee's leave requests, newest first.
func ListLeaves(employeeID int) ([]model.LeaveWindow, error) {
	var out []model.LeaveWindow
	const q = `
	SELECT ` + leaveColumns + `
	  FROM leaves
	 WHERE employee_id = $1
	 ORDER BY start_at DESC;`
	if err := DB.Select(&out, q, employeeID); err != nil {
		log.Error().Err(err).Int("employee_id", employeeID).Msg("ListLeaves failed")
		return nil, err
	}
	return out, nil
}

// WindowsOverlappingDay lists an employee's blocking leave windows whose
// [start, end) interval overlaps the given day's [00:00, 24:00) span.
func WindowsOverlappingDay(employeeID int, day time.Time) ([]model.LeaveWindow, error) {
	dayStart := day.UTC()
	dayEnd := dayStart.Add(24 * time.Hour)
	var out []model.LeaveWindow
	const q = `
	SELECT ` + leaveColumns + `
	  FROM leaves
	 WHERE employee_id = $1
	   AND status IN ('pending','approved')
	   AND start_at < $3 AND end_at > $2;`
	if err := DB.Select(&out, q, employeeID, dayStart, dayEnd); err != nil {
		log.Error().Err(err).Int("employee_id", employeeID).Msg("WindowsOverlappingDay failed")
		return nil, err
	}
	return out, nil
}
