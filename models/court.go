package models

import "time"

// Court is one physical court. InUse mirrors whether a match on this court is
// currently broadcast to the scoreboard display.
type Court struct {
	ID        int       `json:"id"`
	Name      string    `json:"court_name"`
	InUse     bool      `json:"court_in_use"`
	CreatedAt time.Time `json:"created_at"`
}
