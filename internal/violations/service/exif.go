package service

import (
	"fmt"
	"io"

	geo "geoas_backend/internal/geofence/domain"

	"github.com/rwcarlsen/goexif/exif"
)

// extractPhotoLocation reads the GPS position from a photo's EXIF block.
// Photos without EXIF or without a GPS tag return an error; callers treat
// that as "location unknown", not as a failed report.
func extractPhotoLocation(r io.Reader) (geo.Point, error) {
	meta, err := exif.Decode(r)
	if err != nil {
		return geo.Point{}, fmt.Errorf("photo has no readable exif data: %w", err)
	}

	lat, lng, err := meta.LatLong()
	if err != nil {
		return geo.Point{}, fmt.Errorf("photo exif has no gps position: %w", err)
	}

	point := geo.Point{Latitude: lat, Longitude: lng}
	if err := point.Validate(); err != nil {
		return geo.Point{}, err
	}
	return point, nil
}
