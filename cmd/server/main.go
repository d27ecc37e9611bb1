package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hihsk/hihsk/internal/api"
	"github.com/hihsk/hihsk/internal/config"
	"github.com/hihsk/hihsk/internal/db"
	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/quiz"
	"github.com/hihsk/hihsk/internal/repository/sqlite"
	"github.com/hihsk/hihsk/internal/scheduler"
	"github.com/hihsk/hihsk/internal/services"
	"github.com/hihsk/hihsk/internal/srs"
	"github.com/hihsk/hihsk/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("HiHSK Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("pass_threshold=%.2f", cfg.PassThreshold)
	log.Debug("session_word_limit=%d", cfg.SessionWordLimit)
	log.Debug("mastery_threshold=%d", cfg.MasteryThreshold)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("stats_snapshot_hour=%d", cfg.StatsSnapshotHour)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	progressRepo := sqlite.NewProgressRepository(database)
	wordRepo := sqlite.NewWordRepository(database)
	lessonRepo := sqlite.NewLessonRepository(database)
	questionRepo := sqlite.NewQuestionRepository(database)
	resultRepo := sqlite.NewResultRepository(database)

	// Review policy from config
	policy := srs.DefaultPolicy()
	policy.EasyMultiplier = cfg.EasyMultiplier
	policy.HardMultiplier = cfg.HardMultiplier
	policy.ForgotDelay = time.Duration(cfg.ForgotDelayMins) * time.Minute
	policy.MasteryThreshold = cfg.MasteryThreshold

	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)

	// Services
	reviewService := services.NewReviewService(progressRepo, wordRepo, srs.New(policy))
	sessionService := services.NewSessionService(reviewService, cfg.SessionWordLimit)
	quizService := services.NewQuizService(lessonRepo, questionRepo, resultRepo, reviewService,
		quiz.New(cfg.PassThreshold, nil))
	wordService := services.NewWordService(wordRepo)

	srv := &api.Server{
		DB:         database,
		WordSvc:    wordService,
		ReviewSvc:  reviewService,
		SessionSvc: sessionService,
		QuizSvc:    quizService,
		ImportPool: importPool,
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)

	statsScheduler := scheduler.New(progressRepo, resultRepo, cfg.StatsSnapshotHour)
	if err := statsScheduler.Start(); err != nil {
		log.Error("failed to start scheduler: %v", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping background work")
	cancel()
	statsScheduler.Stop()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping import pool")
	importPool.Stop()

	log.Info("===========================================")
	log.Info("HiHSK Server Stopped")
	log.Info("===========================================")
}
