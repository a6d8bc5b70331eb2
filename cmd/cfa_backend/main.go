package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/couplefin/couple_finance_app/internal/core/services"
	"github.com/couplefin/couple_finance_app/internal/handlers"
	"github.com/couplefin/couple_finance_app/internal/middleware"
	"github.com/couplefin/couple_finance_app/internal/platform/config"
	fsstore "github.com/couplefin/couple_finance_app/internal/platform/storage/firestore"
	memstore "github.com/couplefin/couple_finance_app/internal/platform/storage/memory"
	pgstore "github.com/couplefin/couple_finance_app/internal/platform/storage/pgsql"
	"github.com/couplefin/couple_finance_app/internal/repositories/docstore"

	portstorage "github.com/couplefin/couple_finance_app/internal/core/ports/storage"
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

	store, err := openStore(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to open document store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("Error closing document store", slog.String("error", cerr.Error()))
		}
	}()
	logger.Info("Document store ready", slog.String("backend", cfg.StorageBackend))

	repos := docstore.NewRepositoryProvider(store)
	container := services.NewServiceContainer(repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(limitermem.NewStore(), rate)))

	handlers.RegisterRoutes(r, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openStore builds the configured document store backend.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portstorage.DocumentStore, error) {
	switch cfg.StorageBackend {
	case config.BackendFirestore:
		return fsstore.New(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile, logger)
	case config.BackendPgsql:
		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}
		return pgstore.New(ctx, cfg.DatabaseURL, logger)
	default:
		return memstore.New(), nil
	}
}

// runMigrations applies the pending schema migrations before the pgsql
// backend starts serving.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
