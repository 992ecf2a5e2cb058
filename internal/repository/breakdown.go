package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/goaltrack/goaltrack/internal/model"
)

var (
	ErrBreakdownNotFound = errors.New("monthly breakdown not found")
)

type BreakdownRepository interface {
	Create(goalID string, month int, description string) (*model.MonthlyBreakdown, error)
	ByID(breakdownID string) (*model.MonthlyBreakdown, error)
	Breakdowns(goalID string) ([]*model.MonthlyBreakdown, error)
	UpdateStatus(breakdownID, status string) error
	UpdateDescription(breakdownID, description string) error
}

type breakdownRepository struct {
	db *sqlx.DB
}

func NewBreakdownRepository(db *sqlx.DB) BreakdownRepository {
	return &breakdownRepository{db: db}
}

// Create inserts one breakdown row for a goal/month slot. New rows always
// start in not_started; only the timeline UI moves them out of it.
func (r *breakdownRepository) Create(goalID string, month int, description string) (*model.MonthlyBreakdown, error) {
	breakdown := &model.MonthlyBreakdown{
		ID:          uuid.New().String(),
		GoalID:      goalID,
		Month:       month,
		Description: description,
		Status:      model.BreakdownStatusNotStarted,
		CreatedAt:   time.Now(),
	}

	query := `INSERT INTO monthly_breakdowns (id, goal_id, month, description, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		breakdown.ID,
		breakdown.GoalID,
		breakdown.Month,
		breakdown.Description,
		breakdown.Status,
		breakdown.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return breakdown, nil
}

func (r *breakdownRepository) ByID(breakdownID string) (*model.MonthlyBreakdown, error) {
	breakdown := &model.MonthlyBreakdown{}
	query := `SELECT * FROM monthly_breakdowns WHERE id = $1`

	err := r.db.Get(breakdown, query, breakdownID)
	if err == sql.ErrNoRows {
		return nil, ErrBreakdownNotFound
	}

	return breakdown, err
}

func (r *breakdownRepository) Breakdowns(goalID string) ([]*model.MonthlyBreakdown, error) {
	var breakdowns []*model.MonthlyBreakdown
	query := `SELECT * FROM monthly_breakdowns WHERE goal_id = $1 ORDER BY month ASC`

	err := r.db.Select(&breakdowns, query, goalID)
	if err != nil {
		return nil, err
	}

	return breakdowns, nil
}

func (r *breakdownRepository) UpdateStatus(breakdownID, status string) error {
	query := `UPDATE monthly_breakdowns SET status = $1 WHERE id = $2`

	result, err := r.db.Exec(query, status, breakdownID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrBreakdownNotFound
	}

	return nil
}

func (r *breakdownRepository) UpdateDescription(breakdownID, description string) error {
	query := `UPDATE monthly_breakdowns SET description = $1 WHERE id = $2`

	result, err := r.db.Exec(query, description, breakdownID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrBreakdownNotFound
	}

	return nil
}
