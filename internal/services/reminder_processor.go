package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
	"github.com/obrienteixeira/tokyo-manicure/internal/records"
)

// ReminderPublisher publishes reminder messages for upcoming appointments.
type ReminderPublisher interface {
	PublishReminder(ctx context.Context, appointmentID int64, scheduledAt time.Time) error
}

// ReminderProcessorConfig holds configuration for the reminder processor
type ReminderProcessorConfig struct {
	// PollInterval is how often to scan for due appointments (default: 5m)
	PollInterval time.Duration

	// Window is how far ahead an appointment may be to get a reminder (default: 24h)
	Window time.Duration
}

// DefaultReminderProcessorConfig returns sensible defaults
func DefaultReminderProcessorConfig() ReminderProcessorConfig {
	return ReminderProcessorConfig{
		PollInterval: 5 * time.Minute,
		Window:       24 * time.Hour,
	}
}

// ReminderProcessor periodically scans appointments and publishes a
// reminder for each one entering the reminder window.
type ReminderProcessor struct {
	store     records.AppointmentStore
	publisher ReminderPublisher
	config    ReminderProcessorConfig
	now       func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewReminderProcessor(store records.AppointmentStore, publisher ReminderPublisher, config ReminderProcessorConfig) *ReminderProcessor {
	return &ReminderProcessor{
		store:     store,
		publisher: publisher,
		config:    config,
		now:       time.Now,
	}
}

// Start begins the processing loop. Returns an error if already running.
func (p *ReminderProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("reminder processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	go p.runLoop(ctx)

	slog.InfoContext(ctx, "Reminder processor started",
		"poll_interval", p.config.PollInterval,
		"window", p.config.Window)

	return nil
}

// Stop gracefully stops the processor and waits for completion.
func (p *ReminderProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	close(p.stopCh)

	select {
	case <-p.doneCh:
		slog.InfoContext(ctx, "Reminder processor stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Reminder processor stop timed out")
		return ctx.Err()
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()

	return nil
}

// IsRunning returns whether the processor is currently running
func (p *ReminderProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *ReminderProcessor) runLoop(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	// Scan immediately on startup
	p.ProcessDue(ctx)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ProcessDue(ctx)
		}
	}
}

// ProcessDue scans for appointments entering the reminder window and
// publishes one reminder each. Returns how many reminders were sent.
//
// An appointment is due when it is scheduled within the window, has not
// been reminded yet, and is not cancelled. The reminder flag is only set
// after a successful publish, so a failed publish retries on the next
// scan.
func (p *ReminderProcessor) ProcessDue(ctx context.Context) int {
	now := p.now()
	cutoff := now.Add(p.config.Window)

	appointments, err := p.store.ListAppointments(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list appointments", "error", err)
		return 0
	}

	sent := 0
	for _, a := range appointments {
		select {
		case <-ctx.Done():
			return sent
		default:
		}

		if !p.isDue(a, now, cutoff) {
			continue
		}

		if err := p.publisher.PublishReminder(ctx, a.ID, a.ScheduledAt); err != nil {
			slog.ErrorContext(ctx, "Failed to publish reminder",
				"appointment_id", a.ID, "error", err)
			continue
		}

		if err := p.store.MarkAppointmentReminded(ctx, a.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to mark appointment reminded",
				"appointment_id", a.ID, "error", err)
			continue
		}

		sent++
	}

	if sent > 0 {
		slog.InfoContext(ctx, "Published appointment reminders", "count", sent)
	}
	return sent
}

func (p *ReminderProcessor) isDue(a core.Appointment, now, cutoff time.Time) bool {
	if a.ReminderSent {
		return false
	}
	if a.Status == core.StatusCancelled {
		return false
	}
	if a.ScheduledAt.Before(now) {
		return false
	}
	return !a.ScheduledAt.After(cutoff)
}
