package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/minimarketpos/pos_backend/internal/core/services"
	"github.com/minimarketpos/pos_backend/internal/events"
	"github.com/minimarketpos/pos_backend/internal/handlers"
	"github.com/minimarketpos/pos_backend/internal/middleware"
	"github.com/minimarketpos/pos_backend/internal/platform/config"
	"github.com/minimarketpos/pos_backend/internal/repositories/database/pgsql"
	"github.com/minimarketpos/pos_backend/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Stock event publisher; falls back to a no-op when no brokers are set
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.KafkaBrokers != "" {
		kafkaProducer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.StockEventsTopic, logger)
		defer func() {
			if cerr := kafkaProducer.Close(); cerr != nil {
				logger.Error("Error closing event producer", slog.String("error", cerr.Error()))
			}
		}()
		publisher = kafkaProducer
		logger.Info("Stock event publishing enabled", slog.String("topic", cfg.StockEventsTopic))
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if rate, rerr := limiter.NewRateFromFormatted(cfg.RateLimit); rerr == nil {
		store := memory.NewStore()
		r.Use(middleware.RateLimit(limiter.New(store, rate)))
	} else {
		logger.Warn("Invalid RATE_LIMIT format, rate limiting disabled", slog.String("value", cfg.RateLimit))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, publisher)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending up migrations from the migrations
// directory using a temporary database/sql connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
