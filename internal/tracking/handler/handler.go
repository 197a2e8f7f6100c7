package handler

import (
	"encoding/json"
	"fmt"

	geo "geoas_backend/internal/geofence/domain"
	"geoas_backend/internal/tracking/repository"
	"geoas_backend/internal/tracking/service"
	"geoas_backend/internal/tracking/transport"
	"geoas_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const defaultPointLimit = 500

// zoneColors style the zone polygons by protection level on the map.
var zoneColors = map[geo.ProtectionLevel]string{
	geo.LevelHigh:   "#d32f2f",
	geo.LevelMedium: "#f57c00",
	geo.LevelLow:    "#fbc02d",
}

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/map-data", h.MapData)
}

// MapData returns the protected zones and recent tracked points as GeoJSON
// for map rendering.
func (h *Handler) MapData(c *gin.Context) {
	data, err := h.svc.MapData(c.Request.Context(), defaultPointLimit)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.MapDataResponse{
		Zones:  transport.FeatureCollection{Type: "FeatureCollection", Features: make([]transport.Feature, 0, len(data.Zones))},
		Points: transport.FeatureCollection{Type: "FeatureCollection", Features: make([]transport.Feature, 0, len(data.Points))},
	}

	for _, zone := range data.Zones {
		resp.Zones.Features = append(resp.Zones.Features, zoneFeature(zone))
	}
	for _, point := range data.Points {
		resp.Points.Features = append(resp.Points.Features, pointFeature(point))
	}

	httpkit.OK(c, resp)
}

func zoneFeature(zone geo.Zone) transport.Feature {
	color, ok := zoneColors[zone.ProtectionLevel]
	if !ok {
		color = "#9e9e9e"
	}
	return transport.Feature{
		Type:     "Feature",
		Geometry: json.RawMessage(zone.GeoJSON),
		Properties: map[string]interface{}{
			"id":               zone.ID,
			"name":             zone.Name,
			"protection_level": string(zone.ProtectionLevel),
			"color":            color,
		},
	}
}

func pointFeature(point repository.TrackedPoint) transport.Feature {
	// Green marks points inside a protected zone, blue everything else.
	color := "blue"
	if point.Inside {
		color = "green"
	}

	geometry := json.RawMessage(fmt.Sprintf(
		`{"type":"Point","coordinates":[%g,%g]}`,
		point.Longitude, point.Latitude,
	))

	props := map[string]interface{}{
		"inside":      point.Inside,
		"color":       color,
		"recorded_at": point.CreatedAt,
	}
	if point.ZoneName != nil {
		props["zone_name"] = *point.ZoneName
	}
	if point.ProtectionLevel != nil {
		props["protection_level"] = *point.ProtectionLevel
	}

	return transport.Feature{
		Type:       "Feature",
		Geometry:   geometry,
		Properties: props,
	}
}
