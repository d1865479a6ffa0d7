package packets

type TaskResponse struct {
	ID          int     `json:"id"`
	AssigneeID  int     `json:"assignee_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	GroupName   string  `json:"group_name"`
	Recurrence  string  `json:"recurrence"`
	Frequency   int     `json:"frequency"`
	PlannedAt   string  `json:"planned_at"`
	Status      string  `json:"status"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

type LeaveResponse struct {
	ID      int     `json:"id"`
	Status  string  `json:"status"`
	StartAt string  `json:"start_at"`
	EndAt   string  `json:"end_at"`
	HalfDay bool    `json:"half_day"`
	Reason  *string `json:"reason,omitempty"`
}

type HolidayResponse struct {
	ID    int    `json:"id"`
	Day   string `json:"day"`
	Title string `json:"title"`
}
