package amqp

import (
	"encoding/json"
	"time"
)

// ReminderMessage carries an appointment reminder. It holds only the
// appointment id and the scheduled time, the notify worker fetches the
// rest from the store.
type ReminderMessage struct {
	AppointmentID int64     `json:"appointmentId"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewReminderMessage(appointmentID int64, scheduledAt time.Time) *ReminderMessage {
	return &ReminderMessage{
		AppointmentID: appointmentID,
		ScheduledAt:   scheduledAt,
		Timestamp:     time.Now(),
	}
}

func (m *ReminderMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReminderMessageFromJSON(data []byte) (*ReminderMessage, error) {
	var msg ReminderMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
