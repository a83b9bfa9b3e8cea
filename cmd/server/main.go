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

	"github.com/faizm10/DressToImpress-sub000/config"
	"github.com/faizm10/DressToImpress-sub000/internal/api/handler"
	"github.com/faizm10/DressToImpress-sub000/internal/api/middleware"
	"github.com/faizm10/DressToImpress-sub000/internal/api/router"
	"github.com/faizm10/DressToImpress-sub000/internal/repository"
	"github.com/faizm10/DressToImpress-sub000/internal/service"
	"github.com/faizm10/DressToImpress-sub000/pkg/database"
	"github.com/faizm10/DressToImpress-sub000/pkg/debounce"
	"github.com/faizm10/DressToImpress-sub000/pkg/jwt"
	applogger "github.com/faizm10/DressToImpress-sub000/pkg/logger"
	"github.com/faizm10/DressToImpress-sub000/pkg/mailer"
	"github.com/faizm10/DressToImpress-sub000/pkg/redis"
	"github.com/faizm10/DressToImpress-sub000/pkg/scheduler"
	"github.com/faizm10/DressToImpress-sub000/pkg/storage"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
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

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database and migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// 4. redis is optional: without it logout, rate limiting and the content cache are disabled
	var (
		blacklist service.TokenBlacklist
		cache     service.Cache
		rateCheck middleware.Limiter
		tokenList middleware.TokenBlacklist
	)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, running without token blacklist and cache", zap.Error(err))
		rdb = nil
	} else {
		blacklist, cache, rateCheck, tokenList = rdb, rdb, rdb, rdb
	}

	// 5. blob store and mail
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	blobs, err := storage.NewS3Store(startCtx, &cfg.Storage, logger)
	if err != nil {
		logger.Fatal("init blob store", zap.Error(err))
	}
	mail, err := mailer.New(startCtx, &cfg.Mail, logger)
	cancelStart()
	if err != nil {
		logger.Fatal("init mailer", zap.Error(err))
	}

	// 6. Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	debouncer := debounce.New(cfg.Rental.BufferDebounce)

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, service.Deps{
		JWT:       jwtMgr,
		Blacklist: blacklist,
		Cache:     cache,
		Blobs:     blobs,
		Mailer:    mail,
		Debouncer: debouncer,
	}, logger)
	h := handler.NewHandler(cfg, svc)

	if err := middleware.RegisterValidators(); err != nil {
		logger.Fatal("register validators", zap.Error(err))
	}
	engine := router.Setup(cfg, h, jwtMgr, tokenList, rateCheck, logger)

	// 7. background jobs
	jobs, err := scheduler.New(logger)
	if err != nil {
		logger.Fatal("init scheduler", zap.Error(err))
	}
	if cfg.Feature.OrphanSweepEnabled {
		if err := jobs.Every("orphan-image-sweep", cfg.Jobs.OrphanSweepInterval, func(ctx context.Context) error {
			_, err := svc.Maintenance.SweepOrphanBlobs(ctx)
			return err
		}); err != nil {
			logger.Fatal("register sweep job", zap.Error(err))
		}
	}
	jobs.Start()

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown", zap.Error(err))
	}

	// pending buffer edits are written before the database closes
	debouncer.Flush()

	if err := jobs.Shutdown(); err != nil {
		logger.Error("scheduler shutdown", zap.Error(err))
	}

	sqlDB.Close()

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("stopped")
}
