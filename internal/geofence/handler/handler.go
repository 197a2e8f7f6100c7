package handler

import (
	"net/http"

	"geoas_backend/internal/geofence/domain"
	"geoas_backend/internal/geofence/service"
	"geoas_backend/internal/geofence/transport"
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
	rg.POST("/points", h.CheckPoint)
	rg.GET("/location", h.CurrentLocation)
}

// CheckPoint resolves a submitted coordinate against the protected zones and
// stores the decision as the current location.
func (h *Handler) CheckPoint(c *gin.Context) {
	var req transport.CheckPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	decision, err := h.svc.CheckPoint(c.Request.Context(), domain.Point{
		Latitude:  req.Lat,
		Longitude: req.Lng,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.CheckPointResponse{
		Status:          "saved",
		Inside:          decision.Inside,
		ZoneName:        decision.Zone,
		ProtectionLevel: levelString(decision),
	})
}

// CurrentLocation reports the latest stored decision.
func (h *Handler) CurrentLocation(c *gin.Context) {
	decision := h.svc.Current()
	httpkit.OK(c, transport.LocationResponse{
		Inside:          decision.Inside,
		ZoneName:        decision.Zone,
		ProtectionLevel: levelString(decision),
	})
}

func levelString(decision domain.LocationDecision) *string {
	if decision.ProtectionLevel == nil {
		return nil
	}
	s := string(*decision.ProtectionLevel)
	return &s
}
