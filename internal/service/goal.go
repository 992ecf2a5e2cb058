package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/repository"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidYear      = errors.New("year is invalid")
	ErrInvalidStatus    = errors.New("status must be one of: not_started, ahead, on_track, behind")
	ErrGoalLimitReached = errors.New("active goal limit reached")
)

// GoalLimit is the soft business rule surfaced in the creation flow: at most
// two goals are promoted per user.
const GoalLimit = 2

// StatusSummary is the weighted progress snapshot for one goal.
type StatusSummary struct {
	Goal            *model.Goal `json:"goal"`
	ProgressPercent int         `json:"progress_percent"`
	AheadCount      int         `json:"ahead_count"`
	OnTrackCount    int         `json:"on_track_count"`
	BehindCount     int         `json:"behind_count"`
}

// GoalService orchestrates goal creation, progress scoring, and feedback
// generation across the store and the generative backend.
type GoalService struct {
	goalRepo      repository.GoalRepository
	breakdownRepo repository.BreakdownRepository
	feedbackRepo  repository.FeedbackRepository
	planner       Planner

	// now is swappable so scoring tests can pin the calendar month.
	now func() time.Time
}

func NewGoalService(
	goalRepo repository.GoalRepository,
	breakdownRepo repository.BreakdownRepository,
	feedbackRepo repository.FeedbackRepository,
	planner Planner,
) *GoalService {
	return &GoalService{
		goalRepo:      goalRepo,
		breakdownRepo: breakdownRepo,
		feedbackRepo:  feedbackRepo,
		planner:       planner,
		now:           time.Now,
	}
}

// Create persists a goal, asks the planner for a monthly plan, and persists
// every valid plan entry. Plan entries with an out-of-range month or an empty
// description are discarded. Breakdown persistence is not atomic: rows already
// written stay even if a later insert fails.
func (s *GoalService) Create(ctx context.Context, userID, title, description string, year int) (*model.EnrichedGoal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if year < 1 {
		return nil, ErrInvalidYear
	}

	count, err := s.goalRepo.CountUserGoals(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count goals: %w", err)
	}
	if count >= GoalLimit {
		return nil, ErrGoalLimitReached
	}

	now := s.now()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Year:        year,
		Status:      model.GoalStatusOnTrack,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.goalRepo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	entries := s.planner.GenerateMonthlyBreakdowns(ctx, title, description, year)

	var breakdowns []*model.MonthlyBreakdown
	for _, entry := range entries {
		if entry.Month < 1 || entry.Month > 12 || entry.Description == "" {
			continue
		}
		breakdown, err := s.breakdownRepo.Create(goal.ID, entry.Month, entry.Description)
		if err != nil {
			// Accepted partial success: keep what was written so far.
			slog.Error("failed to create monthly breakdown", "error", err,
				"goal_id", goal.ID, "month", entry.Month)
			continue
		}
		breakdowns = append(breakdowns, breakdown)
	}

	return &model.EnrichedGoal{
		Goal:              *goal,
		MonthlyBreakdowns: breakdowns,
		Feedback:          []*model.Feedback{},
	}, nil
}

// Goals returns the user's goals, newest year first, each with its full
// timeline and feedback history.
func (s *GoalService) Goals(userID string) ([]*model.EnrichedGoal, error) {
	goals, err := s.goalRepo.Goals(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	enriched := make([]*model.EnrichedGoal, 0, len(goals))
	for _, goal := range goals {
		breakdowns, err := s.breakdownRepo.Breakdowns(goal.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load breakdowns: %w", err)
		}

		feedback, err := s.feedbackRepo.Feedback(goal.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load feedback: %w", err)
		}

		enriched = append(enriched, &model.EnrichedGoal{
			Goal:              *goal,
			MonthlyBreakdowns: breakdowns,
			Feedback:          feedback,
		})
	}

	return enriched, nil
}

// Update changes a goal's title, description, or status. Ownership is checked
// against userID before anything is written.
func (s *GoalService) Update(userID, goalID string, title, description, status *string) error {
	goal, err := s.ownedGoal(userID, goalID)
	if err != nil {
		return err
	}

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return ErrTitleRequired
		}
		goal.Title = trimmed
	}
	if description != nil {
		goal.Description = *description
	}
	if status != nil {
		goal.Status = *status
	}
	goal.UpdatedAt = s.now()

	return s.goalRepo.Update(goal)
}

// UpdateBreakdownStatus validates the status against the recognized set before
// any store call, verifies the breakdown belongs to one of the user's goals,
// then persists it.
func (s *GoalService) UpdateBreakdownStatus(userID, breakdownID, status string) error {
	if !model.ValidBreakdownStatus(status) {
		return ErrInvalidStatus
	}

	breakdown, err := s.breakdownRepo.ByID(breakdownID)
	if err != nil {
		return err
	}

	_, err = s.ownedGoal(userID, breakdown.GoalID)
	if err != nil {
		return repository.ErrBreakdownNotFound
	}

	return s.breakdownRepo.UpdateStatus(breakdownID, status)
}

// ownedGoal loads a goal and hides it behind not-found when it belongs to a
// different user.
func (s *GoalService) ownedGoal(userID, goalID string) (*model.Goal, error) {
	goal, err := s.goalRepo.ByID(goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, repository.ErrGoalNotFound
	}
	return goal, nil
}

// GenerateFeedback asks the planner for a verdict on the goal's progress so
// far and appends it to the feedback history. An unknown goal yields (nil, nil)
// with no store write.
func (s *GoalService) GenerateFeedback(ctx context.Context, userID, goalID string) (*model.Feedback, error) {
	goal, err := s.ownedGoal(userID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	breakdowns, err := s.breakdownRepo.Breakdowns(goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load breakdowns: %w", err)
	}

	currentMonth := int(s.now().Month())

	result := s.planner.GenerateGoalFeedback(ctx, goal.Title, goal.Description, breakdowns, currentMonth)

	// The backend's reply is untrusted: coerce unknown verdict types to the
	// neutral one before the row is written.
	if !model.ValidFeedbackType(result.FeedbackType) {
		slog.Warn("unrecognized feedback type from backend, coercing to affirm",
			"goal_id", goalID, "feedback_type", result.FeedbackType)
		result.FeedbackType = model.FeedbackTypeAffirm
	}

	feedback, err := s.feedbackRepo.Create(goalID, result.FeedbackText, result.FeedbackType)
	if err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	return feedback, nil
}

// StatusSummary computes the weighted progress score for a goal.
//
// Months at or before the current calendar month are counted by status; ahead
// months score 1.10, on-track 1.00, behind 0.70. The denominator is
// min(currentMonth, number of breakdowns), so not_started months dilute the
// average without appearing in any count. The percentage is capped at 100.
func (s *GoalService) StatusSummary(userID, goalID string) (*StatusSummary, error) {
	goal, err := s.ownedGoal(userID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	breakdowns, err := s.breakdownRepo.Breakdowns(goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load breakdowns: %w", err)
	}

	currentMonth := int(s.now().Month())

	totalMonths := currentMonth
	if len(breakdowns) < totalMonths {
		totalMonths = len(breakdowns)
	}

	summary := &StatusSummary{Goal: goal}
	if totalMonths == 0 {
		return summary, nil
	}

	for _, breakdown := range breakdowns {
		if breakdown.Month > currentMonth {
			continue
		}
		switch breakdown.Status {
		case model.BreakdownStatusAhead:
			summary.AheadCount++
		case model.BreakdownStatusOnTrack:
			summary.OnTrackCount++
		case model.BreakdownStatusBehind:
			summary.BehindCount++
		}
	}

	weighted := (float64(summary.AheadCount)*1.1 +
		float64(summary.OnTrackCount)*1.0 +
		float64(summary.BehindCount)*0.7) / float64(totalMonths)
	if weighted > 1.0 {
		weighted = 1.0
	}
	summary.ProgressPercent = int(weighted * 100)

	return summary, nil
}
