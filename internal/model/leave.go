package model

import "time"

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveWindow is a leave request interval for one employee. Pending and
// Approved windows both block scheduling; Rejected windows never do.
type LeaveWindow struct {
	ID         int         `db:"id" json:"id"`
	EmployeeID int         `db:"employee_id" json:"employee_id"`
	Status     LeaveStatus `db:"status" json:"status"`
	StartAt    time.Time   `db:"start_at" json:"start_at"`
	EndAt      time.Time   `db:"end_at" json:"end_at"`
	HalfDay    bool        `db:"half_day" json:"half_day"`
	Reason     *string     `db:"reason" json:"reason,omitempty"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updated_at"`
}

// Blocking reports whether the window participates in scheduling decisions.
func (w LeaveWindow) Blocking() bool {
	return w.Status == LeavePending || w.Status == LeaveApproved
}
