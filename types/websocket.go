package types

import "time"

// PlayerEvent represents a WebSocket player state update message
type PlayerEvent struct {
	Type      string      `json:"type"`   // "state"
	Action    string      `json:"action"` // command that caused the change
	State     PlayerState `json:"state"`
	Timestamp time.Time   `json:"timestamp"`
}
