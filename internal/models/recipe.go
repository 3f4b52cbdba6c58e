package models

import "time"

// Recipe represents a user's recipe with its attached tags. Optional fields
// are pointers so a missing value round-trips as JSON null. Price is the
// string form of a numeric(5,2) column.
type Recipe struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	TimeMinutes *int      `json:"time_minutes"`
	Price       *string   `json:"price"`
	Link        *string   `json:"link"`
	Tags        []Tag     `json:"tags"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
