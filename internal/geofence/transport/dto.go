// Package transport defines the wire DTOs for the geofence module.
package transport

// CheckPointRequest is the body for submitting a tracked point.
// Field names mirror the map frontend's payload.
type CheckPointRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// CheckPointResponse reports the decision for a submitted point.
type CheckPointResponse struct {
	Status          string  `json:"status"`
	Inside          bool    `json:"inside"`
	ZoneName        *string `json:"zone_name"`
	ProtectionLevel *string `json:"protection_level"`
}

// LocationResponse reports the currently stored location decision.
type LocationResponse struct {
	Inside          bool    `json:"inside"`
	ZoneName        *string `json:"zone_name"`
	ProtectionLevel *string `json:"protection_level"`
}
