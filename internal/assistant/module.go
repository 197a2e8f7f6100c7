// Package assistant provides the question-answering bounded context module.
package assistant

import (
	"geoas_backend/internal/assistant/handler"
	"geoas_backend/internal/assistant/service"
	"geoas_backend/internal/events"
	apphttp "geoas_backend/internal/http"
	"geoas_backend/platform/logger"
	"geoas_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the assistant on top of the geofence location service and
// the retrieval-augmented answering service. speaker may be nil.
func NewModule(location service.LocationService, asker service.Asker, speaker service.Speaker, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.NewService(location, asker, speaker, eventBus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

func (m *Module) Name() string {
	return "assistant"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

var _ apphttp.Module = (*Module)(nil)
