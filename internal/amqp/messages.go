package amqp

import (
	"encoding/json"
	"time"
)

// Document event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// DocumentEventMessage is a lightweight change notification. It carries
// only the action and document id; consumers fetch the full document
// from the store.
type DocumentEventMessage struct {
	Action    string    `json:"action"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewDocumentEventMessage creates an event for the given action and id.
func NewDocumentEventMessage(action string, id int64) *DocumentEventMessage {
	return &DocumentEventMessage{
		Action:    action,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *DocumentEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DocumentEventFromJSON creates a message from JSON bytes
func DocumentEventFromJSON(data []byte) (*DocumentEventMessage, error) {
	var msg DocumentEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
