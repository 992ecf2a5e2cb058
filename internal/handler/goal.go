package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/goaltrack/goaltrack/internal/ctxkeys"
	"github.com/goaltrack/goaltrack/internal/repository"
	"github.com/goaltrack/goaltrack/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

type createGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Year        int    `json:"year"`
}

type updateGoalRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// Create persists a goal and its AI-generated monthly plan, then returns the
// enriched goal.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.goalService.Create(r.Context(), user.ID, req.Title, req.Description, req.Year)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrInvalidYear):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrGoalLimitReached):
			writeError(w, http.StatusConflict, "you can track at most 2 goals")
		default:
			slog.Error("failed to create goal", "error", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "failed to create goal")
		}
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

// List returns the user's goals with timelines and feedback history attached.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Goals(user.ID)
	if err != nil {
		slog.Error("failed to list goals", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "failed to load goals")
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

// Update changes a goal's title, description, or status.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.goalService.Update(user.ID, goalID, req.Title, req.Description, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrGoalNotFound):
			writeError(w, http.StatusNotFound, "goal not found")
		case errors.Is(err, service.ErrTitleRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to update goal", "error", err, "goal_id", goalID)
			writeError(w, http.StatusInternalServerError, "failed to update goal")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// UpdateBreakdownStatus moves one month of the timeline to a new progress
// status.
func (h *GoalHandler) UpdateBreakdownStatus(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	breakdownID := r.PathValue("id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.goalService.UpdateBreakdownStatus(user.ID, breakdownID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrBreakdownNotFound):
			writeError(w, http.StatusNotFound, "monthly breakdown not found")
		default:
			slog.Error("failed to update breakdown status", "error", err, "breakdown_id", breakdownID)
			writeError(w, http.StatusInternalServerError, "failed to update status")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// GenerateFeedback appends one AI verdict on the goal's trajectory and returns
// it for immediate display.
func (h *GoalHandler) GenerateFeedback(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	feedback, err := h.goalService.GenerateFeedback(r.Context(), user.ID, goalID)
	if err != nil {
		slog.Error("failed to generate feedback", "error", err, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "failed to generate feedback")
		return
	}
	if feedback == nil {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	writeJSON(w, http.StatusOK, feedback)
}

// StatusSummary returns the weighted progress snapshot for a goal.
func (h *GoalHandler) StatusSummary(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	summary, err := h.goalService.StatusSummary(user.ID, goalID)
	if err != nil {
		slog.Error("failed to compute status summary", "error", err, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}
	if summary == nil {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
