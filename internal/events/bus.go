package events

import (
	platformevents "geoas_backend/platform/events"
	"geoas_backend/platform/logger"
)

// InMemoryBus aliases the platform bus so modules only ever import this
// package for event plumbing.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus constructs the process-local event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
