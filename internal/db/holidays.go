package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brightops/taskcycle/internal/model"
)

// CreateHoliday flags one calendar date as non-working.
func CreateHoliday(day time.Time, title string) (model.Holiday, error) {
	var out model.Holiday
	const q = `
	INSERT INTO holidays (day, title, created_at)
	VALUES ($1,$2,now())
	ON CONFLICT (day) DO UPDATE SET title = EXCLUDED.title
	RETURNING id, day, title, created_at;`
	if err := DB.Get(&out, q, day.Format("2006-01-02"), title); err != nil {
		log.Error().Err(err).Msg("CreateHoliday failed")
		return model.Holiday{}, err
	}
	return out, nil
}

// ListHolidays lists declared holidays, soonest first.
func ListHolidays() ([]model.Holiday, error) {
	var out []model.Holiday
	if err := DB.Select(&out, `SELECT id, day, title, created_at FROM holidays ORDER BY day;`); err != nil {
		log.Error().Err(err).Msg("ListHolidays failed")
		return nil, err
	}
	return out, nil
}

// IsHoliday reports whether the date is a declared holiday.
func IsHoliday(day time.Time) (bool, error) {
	var n int
	err := DB.Get(&n, `SELECT count(*) FROM holidays WHERE day = $1;`, day.Format("2006-01-02"))
	if err != nil {
		log.Error().Err(err).Msg("IsHoliday failed")
		return false, err
	}
	return n > 0, nil
}
