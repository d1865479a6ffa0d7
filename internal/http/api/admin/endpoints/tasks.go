package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/brightops/taskcycle/internal/db"
	"github.com/brightops/taskcycle/internal/http/api"
	"github.com/brightops/taskcycle/internal/http/api/admin/packets"
	"github.com/brightops/taskcycle/internal/model"
	"github.com/brightops/taskcycle/internal/schedule"
)

type TaskController struct {
	store      db.Store
	cal        *schedule.Calendar
	reconciler *schedule.Reconciler
}

func NewTaskController(store db.Store, cal *schedule.Calendar, reconciler *schedule.Reconciler) *TaskController {
	return &TaskController{store: store, cal: cal, reconciler: reconciler}
}

func TaskModule(store db.Store, cal *schedule.Calendar, reconciler *schedule.Reconciler) api.Module {
	ctl := NewTaskController(store, cal, reconciler)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/tasks", ctl.listTasks)
		c.POST("/tasks", ctl.createTask)
		c.POST("/tasks/:id/complete", ctl.completeTask)
	})
}

func taskResponse(t model.TaskInstance) packets.TaskResponse {
	resp := packets.TaskResponse{
		ID:          t.ID,
		AssigneeID:  t.AssigneeID,
		Name:        t.Name,
		Description: t.Description,
		GroupName:   t.GroupName,
		Recurrence:  string(t.Mode),
		Frequency:   t.Frequency,
		PlannedAt:   t.PlannedAt.Format(time.RFC3339),
		Status:      string(t.Status),
	}
	if t.CompletedAt != nil {
		s := t.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &s
	}
	return resp
}

// GET /api/admin/tasks?scope=today|all
// Lists the current user's pending tasks that are visible right now.
func (t *TaskController) listTasks(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	todayOnly := ctx.DefaultQuery("scope", "all") == "today"

	pending, err := t.store.PendingForAssignee(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list tasks"}
	}

	now := time.Now()
	response := make([]packets.TaskResponse, 0, len(pending))
	for _, it := range pending {
		if !t.cal.Visible(it, now, todayOnly) {
			continue
		}
		response = append(response, taskResponse(it))
	}
	return response, nil
}

// POST /api/admin/tasks
// Creates a one-off task or the first occurrence of a recurring series. The
// planned time defaults to today's anchor; only this first occurrence may
// carry a user-chosen time.
func (t *TaskController) createTask(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	mode := model.RecurrenceMode(request.Recurrence)
	if request.Recurrence == "" {
		mode = model.ModeOneOff
	}
	if mode != model.ModeOneOff && !mode.Valid() {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown recurrence mode"}
	}
	frequency := request.Frequency
	if frequency < 1 {
		frequency = 1
	}

	plannedAt := t.cal.AtAnchor(time.Now())
	if request.PlannedAt != nil {
		parsed, err := time.Parse(time.RFC3339, *request.PlannedAt)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "planned_at must be RFC3339"}
		}
		plannedAt = parsed
	}

	assigneeID := user.ID
	if request.AssigneeID != nil {
		if _, err := t.store.GetUserByID(*request.AssigneeID); err != nil {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "assignee not found"}
		}
		assigneeID = *request.AssigneeID
	}

	created, err := t.store.CreateTask(model.TaskInstance{
		AssigneeID:  assigneeID,
		Name:        request.Name,
		Description: request.Description,
		GroupName:   request.GroupName,
		Mode:        mode,
		Frequency:   frequency,
		PlannedAt:   plannedAt,
		CreatedBy:   user.ID,
	})
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create task"}
	}
	return taskResponse(created), nil
}

// POST /api/admin/tasks/:id/complete
// Marks the instance completed, then opportunistically reconciles its series
// so the next occurrence exists without waiting for the periodic run. A
// reconcile failure never blocks the user-facing path.
func (t *TaskController) completeTask(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	task, err := t.store.GetTaskByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "task not found"}
	}
	if task.AssigneeID != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	if err := t.store.CompleteTask(id, time.Now()); err != nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "task is not pending"}
	}

	if task.Recurring() {
		if _, err := t.reconciler.ReconcileSeries(task.Series()); err != nil {
			log.Warn().Err(err).Int("task_id", id).Msg("post-completion reconcile failed")
		}
	}

	response := gin.H{"message": "completed"}
	return response, nil
}
