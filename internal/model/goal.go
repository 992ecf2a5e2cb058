package model

import (
	"time"
)

const (
	GoalStatusOnTrack = "on_track"
	GoalStatusAhead   = "ahead"
	GoalStatusBehind  = "behind"
)

type Goal struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Year        int       `db:"year" json:"year"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// EnrichedGoal is a goal with its full timeline and feedback history attached,
// as returned to the presentation layer.
type EnrichedGoal struct {
	Goal
	MonthlyBreakdowns []*MonthlyBreakdown `json:"monthly_breakdowns"`
	Feedback          []*Feedback         `json:"feedback"`
}
