package domain

import (
	"math"

	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	lat float64
	lon float64
}

func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	// NaN fails every comparison, so it is rejected explicitly.
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return GeoPoint{}, apperrors.NewValidation("invalid-latitude-longitude", "Invalid latitude/longitude")
	}
	return GeoPoint{lat: lat, lon: lon}, nil
}

func (g GeoPoint) Lat() float64 {
	return g.lat
}

func (g GeoPoint) Lon() float64 {
	return g.lon
}

// Value returns the pair as (lat, lon).
func (g GeoPoint) Value() (float64, float64) {
	return g.lat, g.lon
}
