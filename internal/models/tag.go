package models

// Tag is a user-owned label attached to recipes. Names are unique per owner.
type Tag struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"-"`
	Name   string `json:"name"`
}
