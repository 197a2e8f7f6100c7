// Package violations provides the violation reporting bounded context.
package violations

import (
	apphttp "geoas_backend/internal/http"
	"geoas_backend/internal/violations/handler"
	"geoas_backend/internal/violations/repository"
	"geoas_backend/internal/violations/service"
	"geoas_backend/internal/violations/storage"
	"geoas_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
}

func NewModule(pool *pgxpool.Pool, photos *storage.PhotoStore, resolver service.ZoneResolver, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.NewService(repo, photos, resolver, log)
	h := handler.New(svc)

	return &Module{handler: h, service: svc}
}

func (m *Module) Name() string {
	return "violations"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

var _ apphttp.Module = (*Module)(nil)
