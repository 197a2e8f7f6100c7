// Package tracking provides the point persistence and map bounded context.
// It subscribes to resolved points and records them as a fire-and-forget
// sink; the point-check flow never waits on it.
package tracking

import (
	"context"

	"geoas_backend/internal/events"
	apphttp "geoas_backend/internal/http"
	"geoas_backend/internal/tracking/handler"
	"geoas_backend/internal/tracking/repository"
	"geoas_backend/internal/tracking/service"
	"geoas_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
}

func NewModule(pool *pgxpool.Pool, zones service.ZoneReader, eventBus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.NewService(repo, zones, log)
	h := handler.New(svc)

	eventBus.Subscribe(events.PointResolved{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.PointResolved)
		if !ok {
			return nil
		}
		svc.RecordResolved(ctx, e)
		return nil
	}))

	return &Module{handler: h, service: svc}
}

func (m *Module) Name() string {
	return "tracking"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

var _ apphttp.Module = (*Module)(nil)
