package http

import (
	"context"

	"geoas_backend/internal/events"
	"geoas_backend/platform/config"
	"geoas_backend/platform/logger"
)

// RouterConfig is the slice of application config the router needs.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker answers the readiness probe, typically a DB ping.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is the assembled application handed from the composition root in
// cmd/api to the router.
type App struct {
	Config   RouterConfig
	Logger   *logger.Logger
	Health   HealthChecker
	EventBus events.Bus
	Modules  []Module
}
