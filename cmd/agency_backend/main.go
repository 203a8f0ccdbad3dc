package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/agency_ledger/internal/core/services"
	"github.com/SscSPs/agency_ledger/internal/handlers"
	"github.com/SscSPs/agency_ledger/internal/middleware"
	"github.com/SscSPs/agency_ledger/internal/platform/config"
	"github.com/SscSPs/agency_ledger/internal/platform/lock"
	"github.com/SscSPs/agency_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/agency_ledger/internal/repositories/memory"
	"github.com/SscSPs/agency_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := newLedgerRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepo()

	rdb, err := newRedisClient(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	var locker lock.Locker = lock.NewLocalLocker()
	if rdb != nil {
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.LockTTL)
		logger.Info("Using redis for distributed locks and rate limits")
	}

	container := services.NewServiceContainer(repo, locker)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit, rdb)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.RateLimit(rateLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
}

// newLedgerRepository opens the configured store. Postgres is migrated to the
// latest schema before use.
func newLedgerRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.LedgerRepository, func(), error) {
	if cfg.StoreDriver != config.StorePostgres {
		logger.Warn("Using the in-memory ledger store; data is lost on restart")
		return memory.NewLedgerRepository(), func() {}, nil
	}

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return nil, nil, err
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}
	return pgsql.NewLedgerRepository(pool), func() { database.ClosePgxPool(pool, logger) }, nil
}

// newRedisClient returns nil when REDIS_URL is unset.
func newRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	switch {
	case len(cfg.CORSAllowedOrigins) > 0:
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	case cfg.IsProduction:
		// No cross-origin callers unless configured
		corsCfg.AllowOriginFunc = func(string) bool { return false }
	default:
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AddAllowHeaders("Authorization")
	corsCfg.AddExposeHeaders("X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition")
	corsCfg.MaxAge = 12 * time.Hour
	return corsCfg
}
