package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fernledger/internal/config"
	"fernledger/internal/infra"
	"fernledger/internal/repository"
	"fernledger/internal/router"
	"fernledger/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Photo store is optional. Without a bucket the ledger runs fine, photo
	// references just stay empty.
	var photos infra.PhotoStore
	if cfg.GCSBucket != "" {
		gcs, err := infra.NewGCSPhotoStore(context.Background(), cfg.GCSBucket, cfg.GCSPublicBaseURL, os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
		if err != nil {
			log.Warn().Err(err).Msg("photo store unavailable, uploads disabled")
		} else {
			photos = gcs
			defer func() { _ = gcs.Close() }()
		}
	}

	// Start goroutine worker pool for async tasks (depletion alerts) and the
	// ledger audit cron. Handlers are wired here (composition root) so the
	// pool has full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	handlers := &worker.Handlers{
		Alert: worker.NewAlertWorker(mailer, cfg.AlertEmail),
	}
	worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)
	worker.StartAuditCron(ctx, worker.AuditCronConfig{
		Batches: repository.NewBatchRepository(db),
	})

	r := router.New(cfg, db, rdb, photos, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("fernledger backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
