package model

import (
	"time"
)

const (
	BreakdownStatusNotStarted = "not_started"
	BreakdownStatusAhead      = "ahead"
	BreakdownStatusOnTrack    = "on_track"
	BreakdownStatusBehind     = "behind"
)

type MonthlyBreakdown struct {
	ID          string    `db:"id" json:"id"`
	GoalID      string    `db:"goal_id" json:"goal_id"`
	Month       int       `db:"month" json:"month"`
	Description string    `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ValidBreakdownStatus reports whether s is one of the four recognized
// progress statuses.
func ValidBreakdownStatus(s string) bool {
	switch s {
	case BreakdownStatusNotStarted, BreakdownStatusAhead, BreakdownStatusOnTrack, BreakdownStatusBehind:
		return true
	}
	return false
}
