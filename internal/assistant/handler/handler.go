package handler

import (
	"net/http"
	"strings"

	"geoas_backend/internal/assistant/service"
	"geoas_backend/internal/assistant/transport"
	geo "geoas_backend/internal/geofence/domain"
	"geoas_backend/platform/httpkit"
	"geoas_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/assistant/query", h.Query)
}

// Query answers a question against the rule corpora, scoped to the current
// or freshly supplied location.
func (h *Handler) Query(c *gin.Context) {
	var req transport.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, "query text is required")
		return
	}

	var point *geo.Point
	if req.Point != nil {
		point = &geo.Point{Latitude: req.Point.Lat, Longitude: req.Point.Lng}
	}

	reply, err := h.svc.Handle(c.Request.Context(), point, req.Query, req.UseVoice)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.QueryResponse{
		Status:          "ok",
		Query:           reply.Query,
		Response:        reply.Answer.Text,
		Source:          string(reply.Answer.SourceUsed),
		Intent:          string(reply.Intent),
		InsideGeofence:  reply.Decision.Inside,
		ZoneName:        reply.Decision.Zone,
		ProtectionLevel: levelString(reply.Decision),
	})
}

func levelString(decision geo.LocationDecision) *string {
	if decision.ProtectionLevel == nil {
		return nil
	}
	s := string(*decision.ProtectionLevel)
	return &s
}
