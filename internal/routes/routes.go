package routes

import (
	"net/http"

	"github.com/goaltrack/goaltrack/internal/app"
	"github.com/goaltrack/goaltrack/internal/handler"
	"github.com/goaltrack/goaltrack/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	goal := handler.NewGoalHandler(app.GoalService)

	mux := http.NewServeMux()

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /api/auth/register", rateLimiter(middleware.RequireGuest(auth.Register)))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(auth.Me))

	// Goals
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("PATCH /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("POST /api/goals/{id}/feedback", middleware.RequireAuth(goal.GenerateFeedback))
	mux.HandleFunc("GET /api/goals/{id}/summary", middleware.RequireAuth(goal.StatusSummary))

	// Timeline
	mux.HandleFunc("PATCH /api/breakdowns/{id}/status", middleware.RequireAuth(goal.UpdateBreakdownStatus))

	// Global middleware chain
	return middleware.Chain(mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)
}
