package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ai-mock-interview/internal/config"
	"ai-mock-interview/internal/logger"
	"ai-mock-interview/internal/metrics"
	"ai-mock-interview/internal/ollama"
	"ai-mock-interview/internal/server"
	"ai-mock-interview/internal/storage"
)

func main() {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load("config/interview.yaml")
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	zapLogger := logger.New(cfg.Log)
	defer zapLogger.Sync()

	appMetrics := metrics.NewMetrics()
	gateway := ollama.New(cfg.Ollama, appMetrics, zapLogger)
	store := storage.NewStore(cfg.Interview.ResultsDir)

	if gateway.CheckConnection() {
		if models, err := gateway.ListModels(); err == nil {
			zapLogger.Info("ollama server connected", zap.Strings("models", models))
		}
	} else {
		zapLogger.Warn("ollama server not reachable, interviews cannot start until it is",
			zap.String("base_url", cfg.Ollama.BaseURL))
	}

	srv := server.New(cfg, gateway, store, appMetrics, zapLogger)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		zapLogger.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			zapLogger.Error("shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("starting interview server",
		zap.Int("port", cfg.Server.Port),
		zap.String("model", cfg.Ollama.Model),
		zap.Int("max_turns", cfg.Interview.MaxTurns))

	if err := srv.Listen(); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
