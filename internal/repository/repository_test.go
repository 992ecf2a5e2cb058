package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/goaltrack/goaltrack/internal/db"
	"github.com/goaltrack/goaltrack/internal/model"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	// One connection so every statement sees the same in-memory database
	conn.SetMaxOpenConns(1)

	err = db.RunMigrations(conn.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return conn
}

func createTestUser(t *testing.T, users UserRepository, username string) *model.User {
	t.Helper()
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	err := users.Create(user)
	if err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createTestGoal(t *testing.T, goals GoalRepository, userID string, year int, createdAt time.Time) *model.Goal {
	t.Helper()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       "Goal",
		Description: "",
		Year:        year,
		Status:      model.GoalStatusOnTrack,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	err := goals.Create(goal)
	if err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}
	return goal
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	conn := setupTestDB(t)
	users := NewUserRepository(conn)

	createTestUser(t, users, "alice")

	err := users.Create(&model.User{
		ID:           uuid.New().String(),
		Username:     "alice",
		PasswordHash: "y",
		CreatedAt:    time.Now(),
	})
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Errorf("err = %v, want ErrDuplicateUsername", err)
	}
}

func TestUserRepositoryLookups(t *testing.T) {
	conn := setupTestDB(t)
	users := NewUserRepository(conn)

	created := createTestUser(t, users, "alice")

	byName, err := users.ByUsername("alice")
	if err != nil {
		t.Fatalf("ByUsername() error = %v", err)
	}
	if byName.ID != created.ID {
		t.Errorf("ByUsername returned wrong user")
	}

	_, err = users.ByUsername("Alice")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("usernames should be case-sensitive: err = %v", err)
	}

	_, err = users.ByID("no-such-id")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestGoalRepositoryOrdering(t *testing.T) {
	conn := setupTestDB(t)
	users := NewUserRepository(conn)
	goals := NewGoalRepository(conn)

	user := createTestUser(t, users, "alice")

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	older2025 := createTestGoal(t, goals, user.ID, 2025, base)
	newer2025 := createTestGoal(t, goals, user.ID, 2025, base.Add(time.Hour))
	goal2026 := createTestGoal(t, goals, user.ID, 2026, base)

	list, err := goals.Goals(user.ID)
	if err != nil {
		t.Fatalf("Goals() error = %v", err)
	}

	if len(list) != 3 {
		t.Fatalf("got %d goals, want 3", len(list))
	}

	wantOrder := []string{goal2026.ID, newer2025.ID, older2025.ID}
	for i, want := range wantOrder {
		if list[i].ID != want {
			t.Errorf("list[%d].ID = %s, want %s (desc year, desc created_at)", i, list[i].ID, want)
		}
	}
}

func TestGoalRepositoryUpdateMissing(t *testing.T) {
	conn := setupTestDB(t)
	goals := NewGoalRepository(conn)

	err := goals.Update(&model.Goal{ID: "no-such-goal", Title: "x", Status: model.GoalStatusOnTrack})
	if !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("err = %v, want ErrGoalNotFound", err)
	}
}

func TestBreakdownRepositoryUniqueMonth(t *testing.T) {
	conn := setupTestDB(t)
	users := NewUserRepository(conn)
	goals := NewGoalRepository(conn)
	breakdowns := NewBreakdownRepository(conn)

	user := createTestUser(t, users, "alice")
	goal := createTestGoal(t, goals, user.ID, 2025, time.Now())

	_, err := breakdowns.Create(goal.ID, 3, "March milestone")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = breakdowns.Create(goal.ID, 3, "Second March milestone")
	if err == nil {
		t.Errorf("duplicate month accepted")
	}
}

func TestBreakdownRepositoryOrderAndStatus(t *testing.T) {
	conn := setupTestDB(t)
	users := NewUserRepository(conn)
	goals := NewGoalRepository(conn)
	breakdowns := NewBreakdownRepository(conn)

	user := createTestUser(t, users, "alice")
	goal := createTestGoal(t, goals, user.ID, 2025, time.Now())

	// Insert out of order; listing must come back by month ascending
	for _, month := range []int{5, 1, 3} {
		_, err := breakdowns.Create(goal.ID, month, "milestone")
		if err != nil {
			t.Fatalf("Create(month %d) error = %v", month, err)
		}
	}

	list, err := breakdowns.Breakdowns(goal.ID)
	if err != nil {
		t.Fatalf("Breakdowns() error = %v", err)
	}
	wantMonths := []int{1, 3, 5}
	for i, want := range wantMonths {
		if list[i].Month != want {
			t.Errorf("list[%d].Month = %d, want %d", i, list[i].Month, want)
		}
		if list[i].Status != model.BreakdownStatusNotStarted {
			t.Errorf("initial status = %q, want not_started", list[i].Status)
		}
	}

	err = breakdowns.UpdateStatus(list[0].ID, model.BreakdownStatusAhead)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	updated, err := breakdowns.ByID(list[0].ID)
	if err != nil {
		t.Fatalf("ByID() error = %v", err)
	}
	if updated.Status != model.BreakdownStatusAhead {
		t.Errorf("status = %q, want ahead", updated.Status)
	}

	err = breakdowns.UpdateStatus("no-such-id", model.BreakdownStatusAhead)
	if !errors.Is(err, ErrBreakdownNotFound) {
		t.Errorf("err = %v, want ErrBreakdownNotFound", err)
	}
}

func TestFeedbackRepositoryNewestFirst(t *testing.T) {
	conn := setupTestDB(t)
	users := NewUserRepository(conn)
	goals := NewGoalRepository(conn)
	feedback := NewFeedbackRepository(conn)

	user := createTestUser(t, users, "alice")
	goal := createTestGoal(t, goals, user.ID, 2025, time.Now())

	first, err := feedback.Create(goal.ID, "Keep at it", model.FeedbackTypeAffirm)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	second, err := feedback.Create(goal.ID, "Push harder", model.FeedbackTypeDoubleDown)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	history, err := feedback.Feedback(goal.ID)
	if err != nil {
		t.Fatalf("Feedback() error = %v", err)
	}

	if len(history) != 2 {
		t.Fatalf("got %d rows, want 2", len(history))
	}
	if history[0].ID != second.ID || history[1].ID != first.ID {
		t.Errorf("history not newest-first")
	}
}
