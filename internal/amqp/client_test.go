package amqp

import (
	"testing"
	"time"
)

func TestNewReminderMessage(t *testing.T) {
	scheduledAt := time.Date(2025, 6, 12, 14, 30, 0, 0, time.UTC)

	msg := NewReminderMessage(42, scheduledAt)

	if msg.AppointmentID != 42 {
		t.Errorf("AppointmentID = %v, want 42", msg.AppointmentID)
	}
	if !msg.ScheduledAt.Equal(scheduledAt) {
		t.Errorf("ScheduledAt = %v, want %v", msg.ScheduledAt, scheduledAt)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestReminderMessage_JSON(t *testing.T) {
	msg := &ReminderMessage{
		AppointmentID: 7,
		ScheduledAt:   time.Date(2025, 6, 12, 14, 30, 0, 0, time.UTC),
		Timestamp:     time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC),
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := ReminderMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("ReminderMessageFromJSON() error = %v", err)
	}

	if parsed.AppointmentID != msg.AppointmentID {
		t.Errorf("Parsed AppointmentID = %v, want %v", parsed.AppointmentID, msg.AppointmentID)
	}
	if !parsed.ScheduledAt.Equal(msg.ScheduledAt) {
		t.Errorf("Parsed ScheduledAt = %v, want %v", parsed.ScheduledAt, msg.ScheduledAt)
	}
}

func TestReminderMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"appointmentId": "not_a_number"}`)

	if _, err := ReminderMessageFromJSON(invalidJSON); err == nil {
		t.Error("ReminderMessageFromJSON() should fail with invalid JSON")
	}
}
