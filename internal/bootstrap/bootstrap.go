package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/EgorTarasov/ldt-2023/internal/app/controllers"
	appMigrations "github.com/EgorTarasov/ldt-2023/internal/app/migrations"
	appRepos "github.com/EgorTarasov/ldt-2023/internal/app/repositories"
	appRoutes "github.com/EgorTarasov/ldt-2023/internal/app/routes"
	appServices "github.com/EgorTarasov/ldt-2023/internal/app/services"
	"github.com/EgorTarasov/ldt-2023/internal/config"
	"github.com/EgorTarasov/ldt-2023/internal/db"
	"github.com/EgorTarasov/ldt-2023/internal/metrics"
	appMiddleware "github.com/EgorTarasov/ldt-2023/internal/middleware"
	pkgAuth "github.com/EgorTarasov/ldt-2023/internal/pkg/auth"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/email"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/filtercache"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/helpers"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/logger"
	"github.com/EgorTarasov/ldt-2023/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Metrics               *metrics.Registry
	FilterCache           *filtercache.Cache
	MailingService        *appServices.MailingService
	AuthService           *appServices.AuthService
	UserService           *appServices.UserService
	VacancyService        *appServices.VacancyService
	ApplicationService    *appServices.ApplicationService
	FeedbackService       *appServices.FeedbackService
	ActivityService       *appServices.ActivityService
	AuthController        *appControllers.AuthController
	UserController        *appControllers.UserController
	VacancyController     *appControllers.VacancyController
	ApplicationController *appControllers.ApplicationController
	FeedbackController    *appControllers.FeedbackController
	MailingController     *appControllers.MailingController
	ActivityController    *appControllers.ActivityController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default curator account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Log the error but don't fail the startup over seed data.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)
	deps.Metrics = metrics.NewRegistry()

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.FilterCache = filtercache.New(
		helpers.ParseDuration(cfg.Cache.FilterTTL, 5*time.Minute),
		helpers.ParseDuration(cfg.Cache.CleanupInterval, 10*time.Minute),
	)

	mailer := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	// MailingService doubles as the notifier for vacancy offers and
	// application approvals, so every notification leaves a mailing record.
	deps.MailingService = appServices.NewMailingService(
		deps.Repos.MailingRepository,
		deps.Repos.UserRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.EventRepository,
		mailer,
	)

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository)
	deps.VacancyService = appServices.NewVacancyService(
		deps.Repos.VacancyRepository,
		deps.Repos.OfferRepository,
		deps.Repos.UserRepository,
		deps.MailingService,
		deps.FilterCache,
	)
	deps.ApplicationService = appServices.NewApplicationService(
		deps.Repos.ApplicationRepository,
		deps.Repos.UserRepository,
		deps.MailingService,
	)
	deps.FeedbackService = appServices.NewFeedbackService(deps.Repos.FeedbackRepository, deps.Repos.UserRepository)
	deps.ActivityService = appServices.NewActivityService(deps.Repos.EventRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.JWTService.AccessTokenMaxAge(), deps.JWTService.RefreshTokenMaxAge())
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.VacancyController = appControllers.NewVacancyController(deps.VacancyService, deps.Metrics)
	deps.ApplicationController = appControllers.NewApplicationController(deps.ApplicationService, deps.Metrics)
	deps.FeedbackController = appControllers.NewFeedbackController(deps.FeedbackService)
	deps.MailingController = appControllers.NewMailingController(deps.MailingService, deps.Metrics)
	deps.ActivityController = appControllers.NewActivityController(deps.ActivityService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.Metrics(deps.Metrics))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.VacancyController,
		deps.ApplicationController,
		deps.FeedbackController,
		deps.MailingController,
		deps.ActivityController,
		deps.AuthMiddleware,
	)

	return router
}
