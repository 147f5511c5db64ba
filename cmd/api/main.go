// Command api runs the project-tracking dashboard HTTP server.
//
// @title        BRC Project Dashboard API
// @version      1.0
// @description  Internal project-tracking dashboard: authentication, project CRUD, attachments, and admin assignment operations.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/brc-dashboard/dashboard-api/docs"
	"github.com/brc-dashboard/dashboard-api/internal/api"
	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
	"github.com/brc-dashboard/dashboard-api/internal/core/service"
	mongodb "github.com/brc-dashboard/dashboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/brc-dashboard/dashboard-api/internal/infrastructure/db/redis"
	"github.com/brc-dashboard/dashboard-api/internal/infrastructure/queue"
	"github.com/brc-dashboard/dashboard-api/internal/infrastructure/storage"
	"github.com/brc-dashboard/dashboard-api/internal/pkg/config"
	"github.com/brc-dashboard/dashboard-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	if len(cfg.AllowedEmails) == 0 {
		log.Warn().Msg("ALLOWED_EMAILS is empty; nobody will be able to log in")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := projectRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("project indexes failed")
	}

	files, err := storage.NewLocalStore(cfg.UploadDir, "/uploads")
	if err != nil {
		log.Fatal().Err(err).Msg("upload dir failed")
	}

	// --- Background workers ---
	dispatcher := queue.NewDispatcher(0, activityRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	allowlist := domain.NewAllowlist(cfg.AllowedEmails)
	activitySvc := service.NewActivityService(dispatcher, log)
	authSvc := service.NewAuthService(userRepo, allowlist, cfg.JWTSecret, cfg.TokenTTL)
	projectSvc := service.NewProjectService(projectRepo, files, log)
	adminSvc := service.NewAdminService(
		projectRepo,
		userRepo,
		activitySvc,
		allowlist,
		domain.PermissivePolicy{},
		redisdb.NewOverviewCache(rdb),
		cfg.BcryptCost,
		log,
	)

	e := api.NewRouter(api.Services{
		Auth:    authSvc,
		Project: projectSvc,
		Admin:   adminSvc,
		Users:   userRepo,
	}, db, rdb, api.Options{
		JWTSecret: cfg.JWTSecret,
		UploadDir: files.Dir(),
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
