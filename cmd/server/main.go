package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sports-scheduler/config"
	"sports-scheduler/internal/api/handler"
	"sports-scheduler/internal/api/router"
	"sports-scheduler/internal/repository"
	"sports-scheduler/internal/service"
	"sports-scheduler/pkg/database"
	"sports-scheduler/pkg/jwt"
	applogger "sports-scheduler/pkg/logger"
	"sports-scheduler/pkg/redis"
	"sports-scheduler/pkg/storage"
)

func main() {
	configPath := flag.String("config", "", "path to the config file")
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

	logger.Info("starting sports scheduler",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database and migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations failed", zap.Error(err))
	}

	// 4. redis is optional: without it rate limiting is off
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		rdb = nil
	}

	// 5. export archive
	ctx := context.Background()
	archiver, err := storage.NewArchiver(ctx, &cfg.Archive, logger)
	if err != nil {
		logger.Fatal("init export archive failed", zap.Error(err))
	}

	// 6. Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Calendar)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, archiver, logger)
	if err := svc.Auth.Bootstrap(ctx); err != nil {
		logger.Fatal("bootstrap superadmin failed", zap.Error(err))
	}
	h := handler.NewHandler(svc)

	engine, err := router.Setup(cfg, h, svc.Auth, rdb, db, logger)
	if err != nil {
		logger.Fatal("setup router failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	sqlDB.Close()
	if rdb != nil {
		rdb.Close()
	}
	logger.Info("server stopped")
}
