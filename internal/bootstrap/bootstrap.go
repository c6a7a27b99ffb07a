package bootstrap

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/timetabler/internal/app/controllers"
	"github.com/yigit/timetabler/internal/app/models"
	appRepos "github.com/yigit/timetabler/internal/app/repositories"
	appRoutes "github.com/yigit/timetabler/internal/app/routes"
	appServices "github.com/yigit/timetabler/internal/app/services"
	"github.com/yigit/timetabler/internal/config"
	"github.com/yigit/timetabler/internal/db"
	"github.com/yigit/timetabler/internal/pkg/logger"
)

// DefaultConfigPath is used when CONFIG_PATH is unset.
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	ImportService       appServices.ImportService       // Interface type
	NotificationService appServices.NotificationService // Interface type
	ImportController    *appControllers.ImportController
	Repos               *appRepos.Repositories // Include the main repo container
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// An empty path falls back to CONFIG_PATH, then DefaultConfigPath.
func LoadConfigAndSetupLogger(path string) (*config.Config, zerolog.Logger, error) {
	if path == "" {
		path = config.GetEnv("CONFIG_PATH", DefaultConfigPath)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err // Return zero logger and the error
	}

	logger.Configure(logger.ConfigFromSettings(cfg.Logging.Level, cfg.Logging.Format))

	lgr := logger.Get() // Get the configured global logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection. The schema is
// provisioned outside this service.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(context.Background(), cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Database connection successfully established.")
	return database.Pool, nil
}

// NewImportLocker serializes imports inside this process and, when a lock
// key is configured, across every process sharing the database.
func NewImportLocker(cfg *config.Config, dbPool *pgxpool.Pool) appServices.Locker {
	local := appServices.NewLocalLocker()
	if cfg.Import.LockKey == 0 || dbPool == nil {
		return local
	}
	return appServices.ChainLockers(local, db.NewAdvisoryLock(dbPool, cfg.Import.LockKey))
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Initialize services
	deps.NotificationService = appServices.NewNotificationService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.NotificationRepository,
		lgr.With().Str("component", "notifications").Logger(),
	)

	deps.ImportService = appServices.NewImportService(
		appServices.NewImportStores(deps.Repos),
		deps.NotificationService,
		NewImportLocker(cfg, dbPool),
		appServices.ImportSettings{
			DefaultExamStatus:      models.ExamStatus(cfg.Import.DefaultExamStatus),
			DefaultDurationMinutes: cfg.Import.DefaultDurationMinutes,
			MaxTextBytes:           cfg.Import.MaxTextBytes,
		},
		lgr.With().Str("component", "import").Logger(),
	)

	deps.ImportController = appControllers.NewImportController(deps.ImportService)

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

	router := gin.Default()

	// JSON escaping can grow document text, so the body limit is looser than the text limit.
	appRoutes.SetupRouter(router, deps.ImportController, 4*int64(cfg.Import.MaxTextBytes))

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
