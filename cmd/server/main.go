package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/config"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/api/handler"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/api/router"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/repository"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/service"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/database"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/jwt"
	applogger "github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/logger"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ./config/config.yaml)")
	flag.Parse()

	// 1. config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting time clock",
		zap.Int("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Backend),
		zap.Strings("categories", cfg.Clock.Categories),
	)

	// 3. stores
	repo, db, err := openStores(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open stores", zap.Error(err))
	}

	// 4. Redis (optional: the clock runs without revocation and rate limits)
	var rdb *redis.Client
	var tokens service.TokenBlacklist
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, token revocation and rate limiting disabled", zap.Error(err))
			rdb = nil
		} else {
			tokens = rdb
		}
	}

	// 5. JWT
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. Repository → Service → Handler
	svc, err := service.NewService(cfg, repo, jwtMgr, tokens, logger)
	if err != nil {
		logger.Fatal("failed to build services", zap.Error(err))
	}
	h := handler.NewHandler(svc, cfg.Store.CommitWait)

	// 7. router
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 9. wait for a signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	// pending remote commits finish before the database goes away
	repo.Drain()

	if db != nil {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}

// openStores builds the repository for the configured backend. db is nil
// for the local backend.
func openStores(cfg *config.Config, logger *zap.Logger) (*repository.Repository, *gorm.DB, error) {
	if cfg.Store.Backend == config.StoreLocal {
		local, err := repository.OpenLocalStore(cfg.Store.LocalPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using local store", zap.String("path", cfg.Store.LocalPath))
		return repository.NewLocalRepository(local), nil, nil
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	remote := repository.NewRepository(db)
	if cfg.Store.Backend == config.StorePostgres {
		return remote, db, nil
	}

	// synced: in-memory local log hydrated from the remote store
	local := repository.NewMemoryStore()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repository.HydrateLocal(ctx, local, remote.Log, cfg.Clock.Categories, cfg.Store.ListCap); err != nil {
		return nil, nil, err
	}
	logger.Info("local log hydrated from remote store", zap.Strings("categories", cfg.Clock.Categories))
	return repository.NewSyncedRepository(local, remote, logger), db, nil
}
