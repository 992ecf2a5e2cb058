package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/goaltrack/goaltrack/internal/config"
	"github.com/goaltrack/goaltrack/internal/db"
	"github.com/goaltrack/goaltrack/internal/repository"
	"github.com/goaltrack/goaltrack/internal/service"
)

type App struct {
	Cfg         *config.Config
	DB          *sqlx.DB
	AuthService *service.AuthService
	UserService *service.UserService
	GoalService *service.GoalService
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	breakdownRepository := repository.NewBreakdownRepository(database)
	feedbackRepository := repository.NewFeedbackRepository(database)

	// Services
	aiService := service.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	authService := service.NewAuthService(
		userRepository,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	userService := service.NewUserService(userRepository)
	goalService := service.NewGoalService(goalRepository, breakdownRepository, feedbackRepository, aiService)

	return &App{
		Cfg:         cfg,
		DB:          database,
		AuthService: authService,
		UserService: userService,
		GoalService: goalService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
