// ABOUTME: Map helpers for sightings: GeoJSON markers, camera position, and distance queries.
// ABOUTME: Marker title is the species and the snippet is the place name.
package geo

import (
	"math"
	"sort"

	"github.com/2389-research/birdlog/internal/models"
)

// earthRadiusKm is the mean Earth radius used for haversine distances.
const earthRadiusKm = 6371.0

// FeatureCollection is a GeoJSON feature collection of sighting markers.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON point feature.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   Point      `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Point is a GeoJSON point. Coordinates are [lng, lat].
type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Properties carries the marker content for a sighting.
type Properties struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Snippet  string  `json:"snippet"`
	Date     string  `json:"date"`
	Zoom     float32 `json:"zoom"`
	HasPhoto bool    `json:"hasPhoto"`
}

// Markers builds one point feature per sighting, in the given order.
func Markers(birds []models.Bird) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(birds)),
	}
	for _, b := range birds {
		loc := b.GeoLocation
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Point{
				Type:        "Point",
				Coordinates: [2]float64{loc.Lng, loc.Lat},
			},
			Properties: Properties{
				ID:       b.ID,
				Title:    b.Species,
				Snippet:  b.PlaceName,
				Date:     b.Date,
				Zoom:     loc.Zoom,
				HasPhoto: b.HasPhoto(),
			},
		})
	}
	return fc
}

// Camera returns the initial map view: the first sighting's location. False when there are none.
func Camera(birds []models.Bird) (models.Location, bool) {
	if len(birds) == 0 {
		return models.Location{}, false
	}
	return birds[0].GeoLocation, true
}

// Distance returns the great-circle distance between two locations in kilometres.
func Distance(a, b models.Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Nearby pairs a sighting with its distance from a query point.
type Nearby struct {
	Bird       models.Bird
	DistanceKm float64
}

// Near returns sightings within radiusKm of centre, closest first. Ties keep journal order.
func Near(birds []models.Bird, centre models.Location, radiusKm float64) []Nearby {
	var out []Nearby
	for _, b := range birds {
		d := Distance(centre, b.GeoLocation)
		if d <= radiusKm {
			out = append(out, Nearby{Bird: b, DistanceKm: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}
