// ABOUTME: Tests for bird sighting models.
// ABOUTME: Covers defaults, JSON decoding of missing locations, identity, and validation.
package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNewBirdDefaults(t *testing.T) {
	b := NewBird("Robin")

	if b.ID != "" {
		t.Errorf("expected empty ID before create, got %q", b.ID)
	}
	if b.Species != "Robin" {
		t.Errorf("Species = %q, want Robin", b.Species)
	}
	if b.GeoLocation != DefaultLocation() {
		t.Errorf("GeoLocation = %+v, want default", b.GeoLocation)
	}
	if b.Date != FormatDate(time.Now()) {
		t.Errorf("Date = %q, want today", b.Date)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.March, 7, 10, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "7/3/2024" {
		t.Errorf("FormatDate = %q, want 7/3/2024", got)
	}
}

func TestUnmarshalMissingLocationUsesDefault(t *testing.T) {
	var b Bird
	if err := json.Unmarshal([]byte(`{"id":"a","species":"Wren"}`), &b); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if b.GeoLocation != DefaultLocation() {
		t.Errorf("GeoLocation = %+v, want default", b.GeoLocation)
	}
}

func TestUnmarshalKeepsLocation(t *testing.T) {
	var b Bird
	data := `{"id":"a","species":"Wren","geoLocation":{"lat":1.5,"lng":-2.25,"zoom":9}}`
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	want := Location{Lat: 1.5, Lng: -2.25, Zoom: 9}
	if b.GeoLocation != want {
		t.Errorf("GeoLocation = %+v, want %+v", b.GeoLocation, want)
	}
}

func TestJSONFieldNames(t *testing.T) {
	b := Bird{ID: "x", Species: "Heron", PlaceName: "Quay", ImageURI: "file:///a.jpg"}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	for _, key := range []string{"id", "species", "placeName", "geoLocation", "notes", "date", "imageUri"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing JSON key %q in %s", key, data)
		}
	}
}

func TestSameID(t *testing.T) {
	a := Bird{ID: "1", Species: "Robin"}
	b := Bird{ID: "1", Species: "Wren"}
	c := Bird{ID: "2", Species: "Robin"}

	if !a.SameID(b) {
		t.Error("expected same ID for records with equal IDs")
	}
	if a.SameID(c) {
		t.Error("expected different IDs to not match")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		species string
		wantErr bool
	}{
		{"named", "Robin", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Bird{Species: tt.species}.Validate()
			if tt.wantErr && !errors.Is(err, ErrSpeciesRequired) {
				t.Errorf("Validate() = %v, want ErrSpeciesRequired", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestHasPhoto(t *testing.T) {
	if (Bird{}).HasPhoto() {
		t.Error("expected no photo for empty ImageURI")
	}
	if !(Bird{ImageURI: "content://photo"}).HasPhoto() {
		t.Error("expected photo for non-empty ImageURI")
	}
}
