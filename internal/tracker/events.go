package tracker

import (
	"encoding/json"
	"time"
)

const (
	EventScreenTimeUpdated  = "screen_time_updated"
	EventSessionsTerminated = "sessions_terminated"
)

type Event struct {
	Type    string `json:"event_type"`
	Payload any    `json:"payload"`
}

type ScreenTimeUpdatedPayload struct {
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	ScreenTime  float64   `json:"screen_time"`
	LastChecked time.Time `json:"last_checked"`
}

func (s *Service) broadcast(eventType string, payload any) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		s.logger.Error("failed to marshal event", "event_type", eventType, "error", err)
		return
	}
	s.events.Broadcast(data)
}

func (s *Service) publish(userID int64, eventType string, payload any) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		s.logger.Error("failed to marshal event", "event_type", eventType, "error", err)
		return
	}
	s.events.PublishEvent(userID, data)
}
