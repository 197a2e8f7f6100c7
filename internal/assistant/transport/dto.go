// Package transport defines the wire types for the assistant endpoints.
package transport

// QueryRequest is the body of an assistant query. The point is optional;
// omitting it reuses the most recently resolved location.
type QueryRequest struct {
	Query string        `json:"query"`
	Point *PointPayload `json:"point,omitempty"`
	// UseVoice requests out-of-band spoken delivery of the answer.
	UseVoice bool `json:"use_voice"`
}

type PointPayload struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// QueryResponse mirrors the composed answer plus the location context it was
// answered under.
type QueryResponse struct {
	Status          string  `json:"status"`
	Query           string  `json:"query"`
	Response        string  `json:"response"`
	Source          string  `json:"source"`
	Intent          string  `json:"intent"`
	InsideGeofence  bool    `json:"inside_geofence"`
	ZoneName        *string `json:"zone_name"`
	ProtectionLevel *string `json:"protection_level"`
}
