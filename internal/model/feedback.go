package model

import (
	"time"
)

const (
	FeedbackTypeDoubleDown  = "double_down"
	FeedbackTypeReconsider  = "reconsider"
	FeedbackTypeRaiseTheBar = "raise_the_bar"
	FeedbackTypeAffirm      = "affirm"
)

type Feedback struct {
	ID           string    `db:"id" json:"id"`
	GoalID       string    `db:"goal_id" json:"goal_id"`
	FeedbackText string    `db:"feedback_text" json:"feedback_text"`
	FeedbackType string    `db:"feedback_type" json:"feedback_type"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ValidFeedbackType reports whether s is one of the four recommendation types.
func ValidFeedbackType(s string) bool {
	switch s {
	case FeedbackTypeDoubleDown, FeedbackTypeReconsider, FeedbackTypeRaiseTheBar, FeedbackTypeAffirm:
		return true
	}
	return false
}
