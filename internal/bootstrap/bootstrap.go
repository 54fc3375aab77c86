package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/schoolhub/schoolhub/internal/app/controllers"
	"github.com/schoolhub/schoolhub/internal/app/events"
	"github.com/schoolhub/schoolhub/internal/app/migrations"
	"github.com/schoolhub/schoolhub/internal/app/repositories"
	"github.com/schoolhub/schoolhub/internal/app/routes"
	"github.com/schoolhub/schoolhub/internal/app/services"
	"github.com/schoolhub/schoolhub/internal/config"
	"github.com/schoolhub/schoolhub/internal/db"
	"github.com/schoolhub/schoolhub/internal/middleware"
	"github.com/schoolhub/schoolhub/internal/pkg/auth"
	"github.com/schoolhub/schoolhub/internal/pkg/email"
	"github.com/schoolhub/schoolhub/internal/pkg/logger"
	"github.com/schoolhub/schoolhub/internal/seed"
)

// App holds the wired application
type App struct {
	Config   *config.Config
	DB       *db.PostgresDB
	Router   *gin.Engine
	EventBus *events.Bus
}

// Initialize wires configuration, storage, services and routes
func Initialize(configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	repos := repositories.NewRepositories(database)

	if err := seed.SeedRoles(context.Background(), repos.Role); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to seed roles: %w", err)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  config.ParseDuration(cfg.JWT.AccessTokenExpiration, 0),
		RefreshTokenExp: config.ParseDuration(cfg.JWT.RefreshTokenExpiration, 0),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	emailService := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, log.Logger)

	eventBus := events.NewBus(log.Logger)
	err = eventBus.SubscribeUserRegistered(func(event events.UserRegistered) error {
		return emailService.SendWelcomeEmail(event.Email, event.Name)
	})
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to subscribe welcome email handler: %w", err)
	}

	authService := services.NewAuthService(repos.User, repos.Role, repos.Token, jwtService, eventBus)
	courseService := services.NewCourseService(repos.User, repos.Course)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	routes.Setup(router, routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		Teacher: controllers.NewTeacherController(courseService),
		Student: controllers.NewStudentController(courseService),
	}, jwtService)

	return &App{
		Config:   cfg,
		DB:       database,
		Router:   router,
		EventBus: eventBus,
	}, nil
}

// Shutdown releases application resources
func (a *App) Shutdown() {
	if a.EventBus != nil {
		if err := a.EventBus.Close(); err != nil {
			logger.Warn().Err(err).Msg("Event bus close failed")
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
