package domain

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Event topics published by the API server.
const (
	TopicProjectCreated   = "project.created"
	TopicContactSubmitted = "contact.submitted"
)

type Event struct {
	ID        string          `json:"id"`
	Topic     string          `json:"topic"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent creates a new event with a generated ID.
func NewEvent(topic string, data json.RawMessage) *Event {
	return &Event{
		ID:        generateEventID(),
		Topic:     topic,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// NewJSONEvent marshals v and wraps it in a new event.
func NewJSONEvent(topic string, v any) (*Event, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return NewEvent(topic, data), nil
}

// generateEventID creates a unique event ID with "evt_" prefix.
func generateEventID() string {
	b := make([]byte, 12)
	rand.Read(b)
	return "evt_" + hex.EncodeToString(b)
}
