package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightops/taskcycle/internal/http/api"
	"github.com/brightops/taskcycle/internal/schedule"
)

// CronController exposes the periodic jobs over HTTP for environments without
// native cron. Both jobs are idempotent under at-least-once invocation, so
// overlapping triggers are harmless.
type CronController struct {
	reconciler *schedule.Reconciler
	notifier   *schedule.Notifier
}

func NewCronController(reconciler *schedule.Reconciler, notifier *schedule.Notifier) *CronController {
	return &CronController{reconciler: reconciler, notifier: notifier}
}

func CronModule(reconciler *schedule.Reconciler, notifier *schedule.Notifier) api.Module {
	ctl := NewCronController(reconciler, notifier)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/reconcile", ctl.runReconcile)
		c.PUBLIC_POST("/notify", ctl.runNotify)
	})
}

// POST /api/cron/reconcile
func (c *CronController) runReconcile(ctx *gin.Context) (any, *api.APIError) {
	created := c.reconciler.ReconcileAll()
	return gin.H{"created": created}, nil
}

// POST /api/cron/notify
func (c *CronController) runNotify(ctx *gin.Context) (any, *api.APIError) {
	counts, err := c.notifier.Run(ctx.Request.Context())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "notification run failed"}
	}
	return counts, nil
}
