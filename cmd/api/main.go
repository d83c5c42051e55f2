package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tk-labels/internal/config"
	"tk-labels/internal/domain/entity"
	hhttp "tk-labels/internal/handler/http"
	hauth "tk-labels/internal/handler/http/auth"
	hblock "tk-labels/internal/handler/http/block"
	"tk-labels/internal/handler/http/requestid"
	pgRepo "tk-labels/internal/infra/adapter/persistence/postgres"
	"tk-labels/internal/infra/db"
	"tk-labels/internal/infra/hub"
	"tk-labels/internal/observability/logging"
	"tk-labels/internal/observability/tracing"
	"tk-labels/internal/repository"
	"tk-labels/internal/resilience/circuitbreaker"
	"tk-labels/internal/usecase/labels"
	envconfig "tk-labels/pkg/config"
)

func main() {
	logger := initLogger()
	secret := validateJWTSecret(logger)

	shutdownTracing := tracing.InitProvider("tk-labels")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to stop tracer provider", slog.Any("error", err))
		}
	}()

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, database, secret, version)

	runServer(logger, handler, version)
}

// initLogger initializes the structured logger from LOG_FORMAT and LOG_LEVEL.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// validateJWTSecret checks JWT_SECRET before the admin routes are mounted.
func validateJWTSecret(logger *slog.Logger) []byte {
	secret := os.Getenv("JWT_SECRET")
	if err := hauth.ValidateSecret(secret); err != nil {
		logger.Error("JWT_SECRET validation failed", slog.Any("error", err))
		os.Exit(1)
	}
	return []byte(secret)
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Open(ctx)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(ctx, database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	return envconfig.GetEnvString("VERSION", "dev")
}

func setupServer(logger *slog.Logger, database *sql.DB, secret []byte, version string) http.Handler {
	guarded := circuitbreaker.NewDB(database)
	nodes := pgRepo.NewNodeRepo(guarded)
	configs := pgRepo.NewBlockConfigRepo(guarded)

	hubCfg, err := hub.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load hub configuration", slog.Any("error", err))
		os.Exit(1)
	}
	hubClient := hub.NewClient(hubCfg)
	logger.Info("hub client configured",
		slog.Duration("timeout", hubCfg.Timeout),
		slog.Int64("max_body_size", hubCfg.MaxBodySize),
		slog.Int("retry_attempts", hubCfg.RetryAttempts),
		slog.Float64("requests_per_second", hubCfg.RequestsPerSecond),
		slog.Bool("deny_private_ips", hubCfg.DenyPrivateIPs))

	svc := initBlockService(logger, nodes, configs, hubClient)

	mux := http.NewServeMux()
	mux.Handle("/health", &hhttp.HealthHandler{
		DB:       database,
		Breakers: []*circuitbreaker.CircuitBreaker{hubClient.Breaker(), guarded.Breaker()},
		Version:  version,
	})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	hblock.Register(mux, svc, secret, logger)

	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(1<<20), // 1MB limit
		hhttp.MetricsMiddleware,
	)
}

// initBlockService builds the block service and loads its configuration. A seed file named by
// BLOCK_CONFIG_FILE provides the starting configuration and is persisted when the block has
// never been configured.
func initBlockService(
	logger *slog.Logger,
	nodes repository.NodeRepository,
	configs repository.BlockConfigRepository,
	source labels.NoticeSource,
) *labels.Service {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	seed, err := config.LoadBlockSeedFromEnv()
	if err != nil {
		logger.Error("failed to load block seed", slog.Any("error", err))
		os.Exit(1)
	}

	initial := entity.DefaultBlockConfig()
	blockID := ""
	if seed != nil {
		initial = seed.Block.BlockConfig
		blockID = seed.Block.ID
	}

	svc := labels.NewService(nodes, configs, labels.NewLabelFetcher(source, initial), blockID)

	if seed != nil {
		stored, err := configs.Get(ctx, svc.BlockID)
		if err != nil {
			logger.Error("failed to read block config", slog.Any("error", err))
			os.Exit(1)
		}
		if stored == nil {
			if err := configs.Save(ctx, svc.BlockID, initial); err != nil {
				logger.Error("failed to persist block seed", slog.Any("error", err))
				os.Exit(1)
			}
			logger.Info("block config seeded",
				slog.String("block_id", svc.BlockID),
				slog.String("api_base_url", initial.APIBaseURL))
		}
	}

	if err := svc.Load(ctx); err != nil {
		logger.Error("failed to load block config", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("block service ready",
		slog.String("block_id", svc.BlockID),
		slog.String("api_base_url", svc.Fetcher.Config().APIBaseURL))
	return svc
}

func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := envconfig.GetEnvString("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
