package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"bouncearound.com/daycare/internal/bootstrap"
	"bouncearound.com/daycare/internal/config"
	"bouncearound.com/daycare/internal/scheduler"
	"bouncearound.com/daycare/internal/server"
	"bouncearound.com/daycare/pkg/database"
	"bouncearound.com/daycare/pkg/llm"
	"bouncearound.com/daycare/pkg/logger"
	"bouncearound.com/daycare/pkg/mailer"
	"bouncearound.com/daycare/pkg/storage"
	"github.com/meilisearch/meilisearch-go"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Setup(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(database.Options{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
		SSLMode:  cfg.DBSSLMode,
		Debug:    cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if cfg.SeedAdminPassword != "" {
		if err := bootstrap.SeedAdminUser(db, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin user")
		}
	}

	redisClient, err := database.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis disabled")
		redisClient = nil
	}

	deps := server.Deps{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Mailer: mailer.New(mailer.SMTPOptions{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.SMTPFrom,
			FromName: "Bounce Around",
		}),
	}

	if cfg.MeiliSearchHost != "" {
		deps.Search = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	} else {
		log.Warn().Msg("MEILISEARCH_HOST not set, search disabled")
	}

	fileStorage, err := storage.NewCloudinaryStorage(storage.CloudinaryOptions{
		URL:        cfg.CloudinaryURL,
		CloudName:  cfg.CloudinaryCloudName,
		APIKey:     cfg.CloudinaryAPIKey,
		APISecret:  cfg.CloudinaryAPISecret,
		BaseFolder: cfg.CloudinaryUploadFolder,
	})
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		log.Warn().Msg("cloudinary not configured, uploads disabled")
	case err != nil:
		log.Fatal().Err(err).Msg("failed to initialize cloudinary storage")
	default:
		deps.Storage = fileStorage
	}

	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize gemini")
		}
		defer gemini.Close()
		deps.Generator = gemini
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, report generation disabled")
	}

	srv := server.NewServer(deps)

	jobs := scheduler.New()
	if err := jobs.Register(scheduler.NewFuncJob("compliance_scan", cfg.ComplianceScanCron, func(ctx context.Context) error {
		_, err := srv.Alerts().Scan(ctx)
		return err
	})); err != nil {
		log.Fatal().Err(err).Msg("invalid COMPLIANCE_SCAN_CRON")
	}
	jobs.Start()

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Str("env", cfg.AppEnv).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited with error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jobs.Stop(shutdownCtx)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info().Msg("server stopped")
}
