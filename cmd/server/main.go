package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/user-management-console/internal/app"
	"github.com/nekogravitycat/user-management-console/internal/config"
	"github.com/nekogravitycat/user-management-console/internal/db"
	"github.com/nekogravitycat/user-management-console/internal/observability"
	"github.com/nekogravitycat/user-management-console/internal/session"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.IsProduction)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	appCfg := app.Config{
		IsProduction:         cfg.IsProduction,
		ProdOrigins:          cfg.ProdOrigins,
		Logger:               logger,
		UsersAPIBaseURL:      cfg.UsersAPIBaseURL,
		UsersAPITimeout:      cfg.UsersAPITimeout,
		SessionSecret:        cfg.SessionSecret,
		SessionTTL:           cfg.SessionTTL,
		OperatorPasswordHash: cfg.OperatorPasswordHash,
	}

	// Connect DB (optional, activity journal)
	if cfg.DBDSN != "" {
		pool, err := db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			logger.Fatal("failed to connect to db", zap.Error(err))
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		appCfg.DBPool = pool
	} else {
		logger.Info("DB_DSN not set; activity journal disabled")
	}

	// Session store
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		client, err := db.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		appCfg.SessionStore = session.NewRedisStore(client, cfg.SessionTTL)
	default:
		memStore := session.NewMemoryStore(cfg.SessionTTL)
		go memStore.RunJanitor(ctx, time.Minute)
		appCfg.SessionStore = memStore
	}

	container := app.NewContainer(appCfg)

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		logger.Info("server running",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("users_api", cfg.UsersAPIBaseURL),
			zap.String("session_store", cfg.SessionStore),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}
