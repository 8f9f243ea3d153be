// ABOUTME: Core data models for camera viewpoints and saved places
// ABOUTME: Provides constructors and validators for the navigation core

package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidateCoordinates checks if latitude and longitude are within valid ranges.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return fmt.Errorf("coordinates cannot be NaN")
	}
	if math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("coordinates cannot be infinite")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateName checks if a name is valid (non-empty, within length limits).
// Note: This validates the raw input - callers should trim whitespace themselves if needed.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name cannot be empty or whitespace")
	}
	if len(name) > 255 {
		return fmt.Errorf("name too long (max 255 characters)")
	}
	return nil
}

// FocalPoint is the geographic point a camera looks at.
// Lon and Lat are degrees, Alt is meters.
type FocalPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
	Alt float64 `json:"alt"`
}

// Viewpoint describes a camera pose. Every field is presence-tracked.
// Heading and Pitch are degrees, Range is meters from the focal point.
type Viewpoint struct {
	Name    Optional[string]     `json:"name"`
	Focal   Optional[FocalPoint] `json:"focal_point"`
	Heading Optional[float64]    `json:"heading"`
	Pitch   Optional[float64]    `json:"pitch"`
	Range   Optional[float64]    `json:"range"`
}

// NewViewpoint creates a fully populated viewpoint.
func NewViewpoint(name string, lon, lat, alt, heading, pitch, rng float64) Viewpoint {
	return Viewpoint{
		Name:    Some(name),
		Focal:   Some(FocalPoint{Lon: lon, Lat: lat, Alt: alt}),
		Heading: Some(heading),
		Pitch:   Some(pitch),
		Range:   Some(rng),
	}
}

// NewFocalViewpoint creates an unnamed viewpoint with only a focal point set.
func NewFocalViewpoint(lon, lat, alt float64) Viewpoint {
	return Viewpoint{Focal: Some(FocalPoint{Lon: lon, Lat: lat, Alt: alt})}
}

// WithName returns a copy of v carrying the given name.
func (v Viewpoint) WithName(name string) Viewpoint {
	v.Name = Some(name)
	return v
}

// WithRange returns a copy of v with the range set in meters.
func (v Viewpoint) WithRange(meters float64) Viewpoint {
	v.Range = Some(meters)
	return v
}

// Label returns the name when set and non-empty.
func (v Viewpoint) Label() string {
	return v.Name.OrElse("")
}

// Validate checks the focal point coordinates and range when present.
func (v Viewpoint) Validate() error {
	if fp, ok := v.Focal.Get(); ok {
		if err := ValidateCoordinates(fp.Lat, fp.Lon); err != nil {
			return err
		}
	}
	if r, ok := v.Range.Get(); ok && (math.IsNaN(r) || r < 0) {
		return fmt.Errorf("range must be a non-negative number of meters")
	}
	return nil
}

// Place is a named viewpoint saved for later navigation.
type Place struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Viewpoint Viewpoint `json:"viewpoint"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPlace creates a new place with generated UUID and timestamp.
// The stored viewpoint always carries the place name.
func NewPlace(name string, vp Viewpoint) *Place {
	return &Place{
		ID:        uuid.New(),
		Name:      name,
		Viewpoint: vp.WithName(name),
		CreatedAt: time.Now(),
	}
}
