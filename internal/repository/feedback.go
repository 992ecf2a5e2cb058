package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/goaltrack/goaltrack/internal/model"
)

type FeedbackRepository interface {
	Create(goalID, feedbackText, feedbackType string) (*model.Feedback, error)
	Feedback(goalID string) ([]*model.Feedback, error)
}

type feedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Create appends a feedback row. Rows are never updated or deleted; the
// history is the product.
func (r *feedbackRepository) Create(goalID, feedbackText, feedbackType string) (*model.Feedback, error) {
	feedback := &model.Feedback{
		ID:           uuid.New().String(),
		GoalID:       goalID,
		FeedbackText: feedbackText,
		FeedbackType: feedbackType,
		CreatedAt:    time.Now(),
	}

	query := `INSERT INTO goal_feedback (id, goal_id, feedback_text, feedback_type, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		feedback.ID,
		feedback.GoalID,
		feedback.FeedbackText,
		feedback.FeedbackType,
		feedback.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return feedback, nil
}

func (r *feedbackRepository) Feedback(goalID string) ([]*model.Feedback, error) {
	var feedback []*model.Feedback
	query := `SELECT * FROM goal_feedback WHERE goal_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&feedback, query, goalID)
	if err != nil {
		return nil, err
	}

	return feedback, nil
}
