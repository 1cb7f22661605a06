// ABOUTME: Core data models for bird sightings and their map locations.
// ABOUTME: Provides constructors, defaults, identity comparison, and caller-side validation.
package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Fallback map position used when a sighting has no location of its own.
const (
	DefaultLat  = 52.245696
	DefaultLng  = -7.139102
	DefaultZoom = float32(15)
)

// DateLayout is the day/month/year display format used for new sightings.
const DateLayout = "2/1/2006"

// ErrSpeciesRequired is returned by Validate when a sighting has no species.
var ErrSpeciesRequired = errors.New("species is required")

// Location is a map coordinate with the preferred zoom level for viewing it.
type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Zoom float32 `json:"zoom"`
}

// DefaultLocation returns the fallback coordinate and zoom.
func DefaultLocation() Location {
	return Location{Lat: DefaultLat, Lng: DefaultLng, Zoom: DefaultZoom}
}

// Bird is one sighting in the journal.
type Bird struct {
	ID          string   `json:"id"`
	Species     string   `json:"species"`
	PlaceName   string   `json:"placeName"`
	GeoLocation Location `json:"geoLocation"`
	Notes       string   `json:"notes"`
	Date        string   `json:"date"` // caller-formatted, stored as opaque text
	ImageURI    string   `json:"imageUri"`
}

// NewBird creates a sighting for the given species at the default location, dated today.
// The ID is left empty; the store assigns it on create.
func NewBird(species string) *Bird {
	return &Bird{
		Species:     species,
		GeoLocation: DefaultLocation(),
		Date:        FormatDate(time.Now()),
	}
}

// UnmarshalJSON fills in the default location when geoLocation is absent.
func (b *Bird) UnmarshalJSON(data []byte) error {
	type plain Bird
	p := plain{GeoLocation: DefaultLocation()}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = Bird(p)
	return nil
}

// SameID reports whether two sightings share an identity.
func (b Bird) SameID(other Bird) bool {
	return b.ID == other.ID
}

// HasPhoto returns true if the sighting references a photo.
func (b Bird) HasPhoto() bool {
	return b.ImageURI != ""
}

// Validate checks the fields a caller must supply before saving.
func (b Bird) Validate() error {
	if strings.TrimSpace(b.Species) == "" {
		return ErrSpeciesRequired
	}
	return nil
}

// FormatDate renders t in the journal's day/month/year format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
