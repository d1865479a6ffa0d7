package schedule

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brightops/taskcycle/internal/model"
)

// maxCatchUp bounds the catch-up loop when a series has not been reconciled
// for many periods. Exceeding it is a data-quality alarm, not a crash.
const maxCatchUp = 730

// dedupWindow is the in-process guard against overlapping invocations racing
// between the pending check and the insert. The hard guarantee is the
// one-pending-per-series unique index enforced by the store.
const dedupWindow = time.Minute

// ErrDuplicatePending is returned by TaskStore.CreateOccurrence when another
// writer already created the pending occurrence for the series. The
// reconciler treats it as a benign lost race.
var ErrDuplicatePending = errors.New("schedule: pending occurrence already exists for series")

// TaskStore is the persistence collaborator the reconciler drives.
type TaskStore interface {
	RecurringSeriesKeys() ([]model.SeriesKey, error)
	PendingInSeries(key model.SeriesKey) ([]model.TaskInstance, error)
	LatestCompleted(key model.SeriesKey) (*model.TaskInstance, error)
	CreateOccurrence(seed model.TaskInstance, plannedAt time.Time) (*model.TaskInstance, error)
}

// Reconciler guarantees at most one future pending occurrence per series. It
// is safe under at-least-once invocation and concurrent runs.
type Reconciler struct {
	store TaskStore
	calc  *Calculator

	// Now is the clock, overridable in tests.
	Now func() time.Time
}

func NewReconciler(store TaskStore, calc *Calculator) *Reconciler {
	return &Reconciler{store: store, calc: calc, Now: time.Now}
}

// ReconcileSeries ensures the series has its next pending occurrence.
// Reports whether a new occurrence was created.
//
// A pending instance, no matter how overdue, blocks generation outright: the
// series never has two pending occurrences in flight, even if the user then
// appears to skip a period.
func (r *Reconciler) ReconcileSeries(key model.SeriesKey) (bool, error) {
	pending, err := r.store.PendingInSeries(key)
	if err != nil {
		log.Error().Err(err).Interface("series", key).Msg("pending lookup failed")
		return false, err
	}
	if len(pending) > 0 {
		return false, nil
	}

	seed, err := r.store.LatestCompleted(key)
	if err != nil {
		log.Error().Err(err).Interface("series", key).Msg("latest completed lookup failed")
		return false, err
	}
	if seed == nil {
		// Nothing to extrapolate from until the first occurrence completes.
		return false, nil
	}

	now := r.Now()
	next := seed.PlannedAt
	caughtUp := false
	for i := 0; i < maxCatchUp; i++ {
		next = r.calc.NextOccurrence(next, key.Mode, key.Frequency, key.AssigneeID)
		if next.After(now) {
			caughtUp = true
			break
		}
	}
	if !caughtUp {
		log.Error().Interface("series", key).Time("seed_planned_at", seed.PlannedAt).
			Msg("catch-up loop exhausted, giving up on series")
		return false, nil
	}

	// Re-check for a pending instance created by a racing invocation.
	pending, err = r.store.PendingInSeries(key)
	if err == nil {
		for _, p := range pending {
			if p.PlannedAt.Sub(next).Abs() <= dedupWindow {
				log.Debug().Interface("series", key).Time("planned_at", next).
					Msg("duplicate occurrence suppressed")
				return false, nil
			}
		}
	}

	if _, err := r.store.CreateOccurrence(*seed, next); err != nil {
		if errors.Is(err, ErrDuplicatePending) {
			log.Info().Interface("series", key).Msg("lost occurrence-creation race, no-op")
			return false, nil
		}
		log.Error().Err(err).Interface("series", key).Msg("occurrence creation failed")
		return false, err
	}
	log.Info().Interface("series", key).Time("planned_at", next).Msg("created next occurrence")
	return true, nil
}

// ReconcileAll reconciles every known recurring series independently and
// returns how many occurrences were created. Per-series failures are logged
// and never abort the sweep.
func (r *Reconciler) ReconcileAll() int {
	keys, err := r.store.RecurringSeriesKeys()
	if err != nil {
		log.Error().Err(err).Msg("series key listing failed")
		return 0
	}
	created := 0
	for _, key := range keys {
		ok, err := r.ReconcileSeries(key)
		if err != nil {
			continue
		}
		if ok {
			created++
		}
	}
	log.Info().Int("series", len(keys)).Int("created", created).Msg("reconciliation sweep done")
	return created
}
