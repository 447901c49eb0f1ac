package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/obrienteixeira/tokyo-manicure/internal/amqp"
	"github.com/obrienteixeira/tokyo-manicure/internal/backend"
	"github.com/obrienteixeira/tokyo-manicure/internal/config"
	"github.com/obrienteixeira/tokyo-manicure/internal/log"
	"github.com/obrienteixeira/tokyo-manicure/internal/records"
)

// notifier delivers a reminder to the client of an appointment. Delivery is
// a structured log line; a real SMS/WhatsApp gateway would slot in here.
type notifier struct {
	store  records.Store
	logger *log.Logger
}

func (n *notifier) handle(msg *amqp.ReminderMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	appt, err := n.store.GetAppointment(ctx, msg.AppointmentID)
	if err != nil {
		return fmt.Errorf("load appointment %d: %w", msg.AppointmentID, err)
	}
	client, err := n.store.GetClient(ctx, appt.ClientID)
	if err != nil {
		return fmt.Errorf("load client %d: %w", appt.ClientID, err)
	}

	n.logger.InfoContext(ctx, "Appointment reminder delivered",
		"appointment_id", appt.ID,
		"client", client.Name,
		"phone", client.Phone,
		"scheduled_at", appt.ScheduledAt.Format(time.RFC3339))
	return nil
}

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := log.DefaultConfig()
	cfg.Component = log.ComponentWorker
	logger := log.New(cfg)
	log.SetDefault(logger)

	logger.Info("Starting notify-worker")

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := &notifier{store: result.Store, logger: logger}
	go func() {
		if err := amqpClient.ConsumeReminders(ctx, n.handle); err != nil {
			if err != context.Canceled {
				logger.Error("Reminder consumption failed", log.FieldError, err.Error())
			}
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Notify-worker shutdown complete")
}
