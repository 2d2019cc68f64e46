// internal/domain/websocket/types.go
package websocket

import (
	"encoding/json"
	"time"
)

// EventType represents different real-time event types
type EventType string

const (
	EventTypeConnected      EventType = "connected"
	EventTypePing           EventType = "ping"
	EventTypePong           EventType = "pong"
	EventTypeCatalogChanged EventType = "catalog.changed"
)

// Entity names a catalog table that changed.
type Entity string

const (
	EntityVignette        Entity = "vignette"
	EntityProduct         Entity = "product"
	EntityVignetteProduct Entity = "vignette_product"
	EntityImage           Entity = "image"
)

// Action is the kind of change applied to an entity.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// WSMessage is the universal message format
type WSMessage struct {
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// CatalogChange tells display screens which record to re-fetch.
type CatalogChange struct {
	Entity     Entity `json:"entity"`
	ID         int64  `json:"id"`
	Action     Action `json:"action"`
	VignetteID int64  `json:"vignette_id,omitempty"`
}

// NewMessage creates a new WebSocket message
func NewMessage(eventType EventType, data interface{}) *WSMessage {
	return &WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// Notifier publishes catalog changes to connected display screens.
// Publish must not block the caller.
type Notifier interface {
	Publish(change CatalogChange)
}

// NopNotifier discards every change.
type NopNotifier struct{}

func (NopNotifier) Publish(CatalogChange) {}

// ToJSON converts message to JSON bytes
func (m *WSMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses JSON bytes into WSMessage
func ParseMessage(data []byte) (*WSMessage, error) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
