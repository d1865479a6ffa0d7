package model

import "time"

// Holiday flags one calendar date as non-working. Sundays are non-working
// implicitly and are not stored here.
type Holiday struct {
	ID        int       `db:"id" json:"id"`
	Day       time.Time `db:"day" json:"day"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
