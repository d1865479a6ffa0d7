package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/brightops/taskcycle/internal/db"
	"github.com/brightops/taskcycle/internal/http/api"
	adminapi "github.com/brightops/taskcycle/internal/http/api/admin/endpoints"
	authapi "github.com/brightops/taskcycle/internal/http/api/admin/auth/endpoints"
	cronapi "github.com/brightops/taskcycle/internal/http/api/cron/endpoints"
	"github.com/brightops/taskcycle/internal/http/middleware"
	"github.com/brightops/taskcycle/internal/schedule"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(
	r *gin.Engine,
	env Environment,
	store db.Store,
	cal *schedule.Calendar,
	reconciler *schedule.Reconciler,
	notifier *schedule.Notifier,
) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			"X-Cron-Key",
		},
	}))

	// public auth endpoints
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin"},
		authapi.AuthPublicModule(env.SecretKey, store),
	)

	// JWT-protected admin endpoints
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin", Auth: true, SecretKey: env.SecretKey},
		authapi.AuthSessionModule(env.SecretKey, store),
		adminapi.TaskModule(store, cal, reconciler),
		adminapi.LeaveModule(store),
		adminapi.HolidayModule(store),
	)

	// shared-secret cron triggers
	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/cron",
		Middleware: []gin.HandlerFunc{middleware.CronKeyMiddleware(env.CronSecret)},
	}, cronapi.CronModule(reconciler, notifier))
}
