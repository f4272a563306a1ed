package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"storefront/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	eventType string
	body      []byte
	err       error
}

func (p *recordingPublisher) Publish(eventType string, body []byte) error {
	p.eventType = eventType
	p.body = body
	return p.err
}

func TestPublishAccountEvent(t *testing.T) {
	pub := &recordingPublisher{}
	publishAccountEvent(pub, logging.Discard(), AccountEvent{Type: EventUserDeleted, UserID: "user-2", ActorID: "user-1"})

	assert.Equal(t, EventUserDeleted, pub.eventType)
	var got AccountEvent
	require.NoError(t, json.Unmarshal(pub.body, &got))
	assert.Equal(t, "user-2", got.UserID)
	assert.Equal(t, "user-1", got.ActorID)
	assert.False(t, got.OccurredAt.IsZero())

	// Failures and a missing publisher are swallowed.
	publishAccountEvent(&recordingPublisher{err: errors.New("broker down")}, logging.Discard(), AccountEvent{Type: EventUserDeleted})
	publishAccountEvent(nil, logging.Discard(), AccountEvent{Type: EventUserDeleted})
}

func TestLogAccountEvent(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithOutput("info", "json", &buf)

	body, err := json.Marshal(AccountEvent{Type: EventUserRegistered, UserID: "user-1", Status: "ACTIVE"})
	require.NoError(t, err)
	require.NoError(t, LogAccountEvent(log, EventUserRegistered, body))
	assert.Contains(t, buf.String(), `"user_id":"user-1"`)
	assert.Contains(t, buf.String(), "account event received")

	assert.Error(t, LogAccountEvent(log, EventUserRegistered, []byte("not json")))
	assert.Error(t, LogAccountEvent(log, EventUserRegistered, []byte(`{"type":"user.registered"}`)))
}
