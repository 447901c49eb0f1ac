package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/obrienteixeira/tokyo-manicure/internal/amqp"
	"github.com/obrienteixeira/tokyo-manicure/internal/backend"
	"github.com/obrienteixeira/tokyo-manicure/internal/config"
	"github.com/obrienteixeira/tokyo-manicure/internal/log"
	"github.com/obrienteixeira/tokyo-manicure/internal/services"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := log.DefaultConfig()
	cfg.Component = log.ComponentWorker
	logger := log.New(cfg)
	log.SetDefault(logger)

	logger.Info("Starting reminder-worker")

	appCfg := config.Load()
	if err := appCfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(context.Background(), backend.Config{
		Type:         backend.Type(appCfg.DataBackend),
		SQLiteDBPath: appCfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize data backend", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", log.FieldError, err.Error())
			}
		}
	}()

	amqpClient, err := amqp.NewClient(appCfg.AMQPURL, appCfg.AMQPExchange, appCfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer amqpClient.Close()

	processor := services.NewReminderProcessor(result.Store, amqpClient, services.ReminderProcessorConfig{
		PollInterval: appCfg.ReminderInterval,
		Window:       appCfg.ReminderWindow,
	})

	if err := processor.Start(context.Background()); err != nil {
		logger.Error("Failed to start reminder processor", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Reminder processor started",
		"interval", appCfg.ReminderInterval,
		"window", appCfg.ReminderWindow)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutdown signal received", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := processor.Stop(shutdownCtx); err != nil {
		logger.Warn("Reminder processor stop", log.FieldError, err.Error())
	} else {
		logger.Info("Reminder-worker shutdown complete")
	}
}
