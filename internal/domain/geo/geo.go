// Package geo holds geographic coordinates acquired for a search attempt.
package geo

import (
	"errors"
	"fmt"
)

// Coordinates is a WGS84 point in degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// New creates a Coordinates value, rejecting out-of-range input.
func New(lat, lng float64) (Coordinates, error) {
	if !ValidateCoordinates(lat, lng) {
		return Coordinates{}, fmt.Errorf("coordinates out of range: lat=%f lng=%f", lat, lng)
	}
	return Coordinates{Latitude: lat, Longitude: lng}, nil
}

// Valid reports whether the point lies within WGS84 bounds.
func (c Coordinates) Valid() bool {
	return ValidateCoordinates(c.Latitude, c.Longitude)
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.5f,%.5f", c.Latitude, c.Longitude)
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Provider failure reasons.
var (
	// ErrPermissionDenied signals that the user or platform refused location access.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrUnsupported signals that no location capability is available.
	ErrUnsupported = errors.New("location not supported")
)
