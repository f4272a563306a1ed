package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Account event types.
const (
	EventUserRegistered    = "user.registered"
	EventUserStatusChanged = "user.status_changed"
	EventUserDeleted       = "user.deleted"
)

// EventPublisher delivers account events to a broker.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// AccountEvent is the payload published for account changes.
type AccountEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username,omitempty"`
	Status     string    `json:"status,omitempty"`
	ActorID    string    `json:"actorId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// publishAccountEvent is best-effort: failures are logged and never returned.
func publishAccountEvent(pub EventPublisher, log logrus.FieldLogger, event AccountEvent) {
	if pub == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()

	body, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).WithField("event", event.Type).Warn("failed to marshal account event")
		return
	}
	if err := pub.Publish(event.Type, body); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"event":   event.Type,
			"user_id": event.UserID,
		}).Warn("failed to publish account event")
		return
	}
	log.WithFields(logrus.Fields{"event": event.Type, "user_id": event.UserID}).Debug("published account event")
}

// LogAccountEvent decodes a delivered account event and records it. A body
// that does not decode is reported as an error so the consumer can drop it.
func LogAccountEvent(log logrus.FieldLogger, eventType string, body []byte) error {
	var event AccountEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode %s event: %w", eventType, err)
	}
	if event.UserID == "" {
		return fmt.Errorf("%s event without user id", eventType)
	}
	log.WithFields(logrus.Fields{
		"event":       event.Type,
		"user_id":     event.UserID,
		"status":      event.Status,
		"actor_id":    event.ActorID,
		"occurred_at": event.OccurredAt,
	}).Info("account event received")
	return nil
}
