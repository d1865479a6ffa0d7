package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brightops/taskcycle/internal/db"
	"github.com/brightops/taskcycle/internal/http/api"
	"github.com/brightops/taskcycle/internal/http/api/admin/packets"
	"github.com/brightops/taskcycle/internal/model"
)

type HolidayController struct {
	store db.Store
}

func NewHolidayController(store db.Store) *HolidayController {
	return &HolidayController{store: store}
}

func HolidayModule(store db.Store) api.Module {
	ctl := NewHolidayController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/holidays", ctl.listHolidays)
		c.POST("/holidays", ctl.createHoliday)
	})
}

// GET /api/admin/holidays
func (h *HolidayController) listHolidays(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := h.store.ListHolidays()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list holidays"}
	}

	response := make([]packets.HolidayResponse, 0, len(list))
	for _, it := range list {
		response = append(response, packets.HolidayResponse{
			ID:    it.ID,
			Day:   it.Day.Format("2006-01-02"),
			Title: it.Title,
		})
	}
	return response, nil
}

// POST /api/admin/holidays
func (h *HolidayController) createHoliday(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateHolidayRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	day, err := time.Parse("2006-01-02", request.Day)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "day must be YYYY-MM-DD"}
	}

	created, err := h.store.CreateHoliday(day, request.Title)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create holiday"}
	}
	return packets.HolidayResponse{
		ID:    created.ID,
		Day:   created.Day.Format("2006-01-02"),
		Title: created.Title,
	}, nil
}
