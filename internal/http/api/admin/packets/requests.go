package packets

type CreateTaskRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	GroupName   string  `json:"group_name"`
	Recurrence  string  `json:"recurrence"`
	Frequency   int     `json:"frequency"`
	AssigneeID  *int    `json:"assignee_id"`
	PlannedAt   *string `json:"planned_at"` // RFC3339; defaults to today's anchor
}

type CreateLeaveRequest struct {
	StartAt string  `json:"start_at" binding:"required"`
	EndAt   string  `json:"end_at" binding:"required"`
	HalfDay bool    `json:"half_day"`
	Reason  *string `json:"reason"`
}

type CreateHolidayRequest struct {
	Day   string `json:"day" binding:"required"` // YYYY-MM-DD
	Title string `json:"title" binding:"required"`
}
