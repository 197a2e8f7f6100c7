// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"geoas_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Geofence Domain Events
// =============================================================================

// PointResolved is published after a submitted point has been resolved
// against the protected zones. The tracking module subscribes to persist the
// point; subscribers must tolerate losing events (fire-and-forget sink).
type PointResolved struct {
	BaseEvent
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Inside          bool    `json:"inside"`
	ZoneName        *string `json:"zoneName,omitempty"`
	ProtectionLevel *string `json:"protectionLevel,omitempty"`
}

func (e PointResolved) EventName() string { return "geofence.point.resolved" }

// =============================================================================
// Assistant Domain Events
// =============================================================================

// AnswerComposed is published after the assistant has produced a final answer.
// Used for audit logging; carries no PII beyond the query itself.
type AnswerComposed struct {
	BaseEvent
	Query      string `json:"query"`
	SourceUsed string `json:"sourceUsed"`
	Intent     string `json:"intent"`
	Inside     bool   `json:"inside"`
}

func (e AnswerComposed) EventName() string { return "assistant.answer.composed" }
