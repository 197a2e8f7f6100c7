// Package geofence provides the protected-zone bounded context module.
package geofence

import (
	"geoas_backend/internal/geofence/handler"
	"geoas_backend/internal/geofence/repository"
	"geoas_backend/internal/geofence/service"
	"geoas_backend/internal/events"
	apphttp "geoas_backend/internal/http"
	"geoas_backend/platform/logger"
	"geoas_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler  *handler.Handler
	service  *service.Service
	resolver *service.Resolver
	repo     *repository.Repository
}

func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	resolver := service.NewResolver(repo)
	state := service.NewStateStore()
	svc := service.NewService(resolver, state, eventBus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, resolver: resolver, repo: repo}
}

func (m *Module) Name() string {
	return "geofence"
}

// Service exposes the location service so other domains, the assistant in
// particular, can read the most recent resolved location.
func (m *Module) Service() *service.Service {
	return m.service
}

// Resolver exposes stateless zone resolution for callers that must not
// update the tracked-actor location, violation reports in particular.
func (m *Module) Resolver() *service.Resolver {
	return m.resolver
}

// Repository exposes zone reads for map rendering.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

var _ apphttp.Module = (*Module)(nil)
