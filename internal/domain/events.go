package domain

import "time"

// SetupEvent is published on the setup-sheet event queue whenever a weekly
// setup changes, and consumed by the notify worker.
type SetupEvent struct {
	Kind      string    `json:"kind"`
	Action    string    `json:"action"`
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	WeekStart time.Time `json:"weekStart"`
}
