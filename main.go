package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/example/vocabhub/internal/api"
	"github.com/example/vocabhub/internal/config"
	"github.com/example/vocabhub/internal/database"
	"github.com/example/vocabhub/internal/excel"
	"github.com/example/vocabhub/internal/scheduler"
	"github.com/example/vocabhub/internal/study"
)

const version = "0.3.0"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect()
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.BundleImportFile != "" {
		importCfg := excel.DefaultImportConfig()
		importCfg.FilePath = cfg.BundleImportFile
		result, err := excel.ImportBundleWords(context.Background(), db, importCfg)
		if err != nil {
			logger.Fatal("bundle import failed", zap.Error(err))
		}
		logger.Info("bundle import finished",
			zap.Int("processed", result.TotalProcessed),
			zap.Int("imported", result.Imported),
			zap.Int("skipped", result.Skipped),
			zap.Int("errors", len(result.Errors)))
	}

	svc := study.New(db, logger)
	server := api.New(svc, db, logger, version)

	sched := scheduler.New(db, logger, cfg.TopUpHour)
	sched.Start()
	defer sched.Stop()

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server started", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	sig := <-sigChan
	logger.Info("received signal, shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
