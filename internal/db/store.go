// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/brightops/taskcycle/internal/model"
	"github.com/brightops/taskcycle/internal/schedule"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error
	UserByID(id int) (*model.User, error)

	// task functions
	CreateTask(t model.TaskInstance) (model.TaskInstance, error)
	GetTaskByID(id int) (*model.TaskInstance, error)
	CompleteTask(id int, at time.Time) error
	PendingForAssignee(assigneeID int) ([]model.TaskInstance, error)
	RecurringSeriesKeys() ([]model.SeriesKey, error)
	PendingInSeries(key model.SeriesKey) ([]model.TaskInstance, error)
	LatestCompleted(key model.SeriesKey) (*model.TaskInstance, error)
	CreateOccurrence(seed model.TaskInstance, plannedAt time.Time) (*model.TaskInstance, error)
	PendingDueBetween(start, end time.Time) ([]model.TaskInstance, error)

	// leave functions
	CreateLeave(w model.LeaveWindow) (model.LeaveWindow, error)
	SetLeaveStatus(id int, status model.LeaveStatus) error
	ListLeaves(employeeID int) ([]model.LeaveWindow, error)
	WindowsOverlappingDay(employeeID int, day time.Time) ([]model.LeaveWindow, error)

	// holiday functions
	CreateHoliday(day time.Time, title string) (model.Holiday, error)
	ListHolidays() ([]model.Holiday, error)
	IsHoliday(day time.Time) (bool, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time checks that pgStore satisfies the store contracts of the
// scheduling core.
var (
	_ Store                  = (*pgStore)(nil)
	_ schedule.TaskStore     = (*pgStore)(nil)
	_ schedule.NotifierStore = (*pgStore)(nil)
	_ schedule.LeaveSource   = (*pgStore)(nil)
	_ schedule.HolidaySource = (*pgStore)(nil)
)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	return CreateUser(email, hashedPassword, name)
}
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) { return GetUserByEmail(email) }
func (s *pgStore) GetUserByID(id int) (*model.User, error)          { return GetUserByID(id) }
func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	return UpdateUserProfile(id, email, name)
}
func (s *pgStore) UserByID(id int) (*model.User, error) { return GetUserByID(id) }

func (s *pgStore) CreateTask(t model.TaskInstance) (model.TaskInstance, error) { return CreateTask(t) }
func (s *pgStore) GetTaskByID(id int) (*model.TaskInstance, error)             { return GetTaskByID(id) }
func (s *pgStore) CompleteTask(id int, at time.Time) error                     { return CompleteTask(id, at) }
func (s *pgStore) PendingForAssignee(assigneeID int) ([]model.TaskInstance, error) {
	return PendingForAssignee(assigneeID)
}
func (s *pgStore) RecurringSeriesKeys() ([]model.SeriesKey, error) { return RecurringSeriesKeys() }
func (s *pgStore) PendingInSeries(key model.SeriesKey) ([]model.TaskInstance, error) {
	return PendingInSeries(key)
}
func (s *pgStore) LatestCompleted(key model.SeriesKey) (*model.TaskInstance, error) {
	return LatestCompleted(key)
}
func (s *pgStore) CreateOccurrence(seed model.TaskInstance, plannedAt time.Time) (*model.TaskInstance, error) {
	return CreateOccurrence(seed, plannedAt)
}
func (s *pgStore) PendingDueBetween(start, end time.Time) ([]model.TaskInstance, error) {
	return PendingDueBetween(start, end)
}

func (s *pgStore) CreateLeave(w model.LeaveWindow) (model.LeaveWindow, error) { return CreateLeave(w) }
func (s *pgStore) SetLeaveStatus(id int, status model.LeaveStatus) error {
	return SetLeaveStatus(id, status)
}
func (s *pgStore) ListLeaves(employeeID int) ([]model.LeaveWindow, error) {
	return ListLeaves(employeeID)
}
func (s *pgStore) WindowsOverlappingDay(employeeID int, day time.Time) ([]model.LeaveWindow, error) {
	return WindowsOverlappingDay(employeeID, day)
}

func (s *pgStore) CreateHoliday(day time.Time, title string) (model.Holiday, error) {
	return CreateHoliday(day, title)
}
func (s *pgStore) ListHolidays() ([]model.Holiday, error) { return ListHolidays() }
func (s *pgStore) IsHoliday(day time.Time) (bool, error)  { return IsHoliday(day) }
