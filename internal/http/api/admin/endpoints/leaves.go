package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brightops/taskcycle/internal/db"
	"github.com/brightops/taskcycle/internal/http/api"
	"github.com/brightops/taskcycle/internal/http/api/admin/packets"
	"github.com/brightops/taskcycle/internal/model"
)

type LeaveController struct {
	store db.Store
}

func NewLeaveController(store db.Store) *LeaveController {
	return &LeaveController{store: store}
}

func LeaveModule(store db.Store) api.Module {
	ctl := NewLeaveController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/leaves", ctl.listLeaves)
		c.POST("/leaves", ctl.createLeave)
		c.POST("/leaves/:id/approve", ctl.approveLeave)
		c.POST("/leaves/:id/reject", ctl.rejectLeave)
	})
}

func leaveResponse(w model.LeaveWindow) packets.LeaveResponse {
	return packets.LeaveResponse{
		ID:      w.ID,
		Status:  string(w.Status),
		StartAt: w.StartAt.Format(time.RFC3339),
		EndAt:   w.EndAt.Format(time.RFC3339),
		HalfDay: w.HalfDay,
		Reason:  w.Reason,
	}
}

// GET /api/admin/leaves
func (l *LeaveController) listLeaves(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := l.store.ListLeaves(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list leaves"}
	}

	response := make([]packets.LeaveResponse, 0, len(list))
	for _, it := range list {
		response = append(response, leaveResponse(it))
	}
	return response, nil
}

// POST /api/admin/leaves
func (l *LeaveController) createLeave(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateLeaveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	startAt, err := time.Parse(time.RFC3339, request.StartAt)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "start_at must be RFC3339"}
	}
	endAt, err := time.Parse(time.RFC3339, request.EndAt)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "end_at must be RFC3339"}
	}
	if !endAt.After(startAt) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "end_at must be after start_at"}
	}

	created, err := l.store.CreateLeave(model.LeaveWindow{
		EmployeeID: user.ID,
		StartAt:    startAt,
		EndAt:      endAt,
		HalfDay:    request.HalfDay,
		Reason:     request.Reason,
	})
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create leave"}
	}
	return leaveResponse(created), nil
}

// POST /api/admin/leaves/:id/approve
func (l *LeaveController) approveLeave(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return l.setStatus(ctx, model.LeaveApproved)
}

// POST /api/admin/leaves/:id/reject
func (l *LeaveController) rejectLeave(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return l.setStatus(ctx, model.LeaveRejected)
}

func (l *LeaveController) setStatus(ctx *gin.Context, status model.LeaveStatus) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if err := l.store.SetLeaveStatus(id, status); err != nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "leave is not pending"}
	}

	response := gin.H{"message": string(status)}
	return response, nil
}
