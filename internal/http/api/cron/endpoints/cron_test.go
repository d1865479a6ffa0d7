package endpoints

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/brightops/taskcycle/internal/http/api"
	"github.com/brightops/taskcycle/internal/http/middleware"
	"github.com/brightops/taskcycle/internal/model"
	"github.com/brightops/taskcycle/internal/schedule"
)

type emptyStore struct{}

func (emptyStore) RecurringSeriesKeys() ([]model.SeriesKey, error)   { return nil, nil }
func (emptyStore) PendingInSeries(model.SeriesKey) ([]model.TaskInstance, error) {
	return nil, nil
}
func (emptyStore) LatestCompleted(model.SeriesKey) (*model.TaskInstance, error) { return nil, nil }
func (emptyStore) CreateOccurrence(model.TaskInstance, time.Time) (*model.TaskInstance, error) {
	return nil, nil
}
func (emptyStore) PendingDueBetween(start, end time.Time) ([]model.TaskInstance, error) {
	return nil, nil
}
func (emptyStore) UserByID(id int) (*model.User, error) { return nil, nil }

type nopSink struct{}

func (nopSink) SendTaskReminder(model.TaskInstance, model.User) error { return nil }

func setupCronRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cal := schedule.NewCalendar(nil, time.UTC)
	calc := schedule.NewCalculator(cal, nil)
	reconciler := schedule.NewReconciler(emptyStore{}, calc)
	notifier := schedule.NewNotifier(emptyStore{}, nopSink{}, schedule.NewMemoryMarkers(), cal)

	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/cron",
		Middleware: []gin.HandlerFunc{middleware.CronKeyMiddleware(secret)},
	}, CronModule(reconciler, notifier))
	return r
}

func TestCronEndpointsRequireSharedSecret(t *testing.T) {
	router := setupCronRouter("topsecret")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/cron/reconcile", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/cron/reconcile", nil)
	req.Header.Set("X-Cron-Key", "wrong")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/cron/reconcile", nil)
	req.Header.Set("X-Cron-Key", "topsecret")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"created":0}`, w.Body.String())
}

func TestCronNotifyAcceptsQueryKey(t *testing.T) {
	router := setupCronRouter("topsecret")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/cron/notify?key=topsecret", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
