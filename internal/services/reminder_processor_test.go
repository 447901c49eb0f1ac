package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
	"github.com/obrienteixeira/tokyo-manicure/internal/records"
	"github.com/obrienteixeira/tokyo-manicure/internal/records/memory"
)

type capturingPublisher struct {
	published []int64
	err       error
}

func (p *capturingPublisher) PublishReminder(_ context.Context, appointmentID int64, _ time.Time) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, appointmentID)
	return nil
}

func seedAppointment(t *testing.T, store records.AppointmentStore, scheduledAt time.Time, status core.AppointmentStatus, reminded bool) core.Appointment {
	t.Helper()
	a, err := store.SaveAppointment(context.Background(), core.Appointment{
		ClientID:     1,
		EmployeeID:   1,
		ServiceID:    1,
		ScheduledAt:  scheduledAt,
		Status:       status,
		ReminderSent: reminded,
	})
	if err != nil {
		t.Fatalf("SaveAppointment: %v", err)
	}
	return a
}

func TestReminderProcessor_ProcessDue(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := memory.New()
	pub := &capturingPublisher{}

	due := seedAppointment(t, store, now.Add(3*time.Hour), core.StatusScheduled, false)
	seedAppointment(t, store, now.Add(48*time.Hour), core.StatusScheduled, false)   // outside window
	seedAppointment(t, store, now.Add(-1*time.Hour), core.StatusScheduled, false)   // already past
	seedAppointment(t, store, now.Add(2*time.Hour), core.StatusCancelled, false)    // cancelled
	alreadySent := seedAppointment(t, store, now.Add(4*time.Hour), core.StatusConfirmed, true)

	p := NewReminderProcessor(store, pub, ReminderProcessorConfig{
		PollInterval: time.Minute,
		Window:       24 * time.Hour,
	})
	p.now = func() time.Time { return now }

	sent := p.ProcessDue(context.Background())
	if sent != 1 {
		t.Fatalf("ProcessDue() = %d, want 1", sent)
	}
	if len(pub.published) != 1 || pub.published[0] != due.ID {
		t.Fatalf("published = %v, want [%d]", pub.published, due.ID)
	}

	got, _ := store.GetAppointment(context.Background(), due.ID)
	if !got.ReminderSent {
		t.Error("due appointment should be marked reminded")
	}
	gotSent, _ := store.GetAppointment(context.Background(), alreadySent.ID)
	if !gotSent.ReminderSent {
		t.Error("already-reminded appointment should stay reminded")
	}

	// Second scan is a no-op: everything due was marked.
	if again := p.ProcessDue(context.Background()); again != 0 {
		t.Errorf("second ProcessDue() = %d, want 0", again)
	}
}

func TestReminderProcessor_PublishFailureRetries(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := memory.New()
	pub := &capturingPublisher{err: errors.New("broker down")}

	due := seedAppointment(t, store, now.Add(3*time.Hour), core.StatusScheduled, false)

	p := NewReminderProcessor(store, pub, DefaultReminderProcessorConfig())
	p.now = func() time.Time { return now }

	if sent := p.ProcessDue(context.Background()); sent != 0 {
		t.Fatalf("ProcessDue() = %d, want 0 on publish failure", sent)
	}

	got, _ := store.GetAppointment(context.Background(), due.ID)
	if got.ReminderSent {
		t.Fatal("appointment must not be marked reminded when publish fails")
	}

	// Broker recovers; the same appointment is picked up again.
	pub.err = nil
	if sent := p.ProcessDue(context.Background()); sent != 1 {
		t.Fatalf("ProcessDue() after recovery = %d, want 1", sent)
	}
}

func TestReminderProcessor_StartStop(t *testing.T) {
	store := memory.New()
	pub := &capturingPublisher{}

	p := NewReminderProcessor(store, pub, ReminderProcessorConfig{
		PollInterval: time.Hour,
		Window:       24 * time.Hour,
	})

	ctx := context.Background()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := p.Start(ctx); err == nil {
		t.Error("second Start() should fail while running")
	}
	if !p.IsRunning() {
		t.Error("IsRunning() = false after Start")
	}

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.Stop(stopCtx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if p.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}
}
