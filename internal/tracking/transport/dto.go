// Package transport defines the GeoJSON wire types for the map endpoint.
package transport

import "encoding/json"

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON feature. Geometry is emitted verbatim when it
// came from the spatial store.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// MapDataResponse carries zones and recent tracked points as separate
// feature collections.
type MapDataResponse struct {
	Zones  FeatureCollection `json:"zones"`
	Points FeatureCollection `json:"points"`
}
