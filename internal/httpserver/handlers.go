// ABOUTME: HTTP handlers for the bird journal API and its JSON helpers.
// ABOUTME: Requests patch only the fields they carry; unknown ids get 404.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/2389-research/birdlog/internal/geo"
	"github.com/2389-research/birdlog/internal/logger"
	"github.com/2389-research/birdlog/internal/models"
	"github.com/2389-research/birdlog/internal/search"
)

// maxBodyBytes caps request bodies for create and update.
const maxBodyBytes = 1 << 20

type healthzResponse struct {
	Status        string  `json:"status"`
	Birds         int     `json:"birds"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// birdPatch carries the fields a client supplied; nil fields are left alone.
// ID is accepted so clients can send back a full record, but it is never applied.
type birdPatch struct {
	ID          *string        `json:"id"`
	Species     *string        `json:"species"`
	PlaceName   *string        `json:"placeName"`
	GeoLocation *locationPatch `json:"geoLocation"`
	Notes       *string        `json:"notes"`
	Date        *string        `json:"date"`
	ImageURI    *string        `json:"imageUri"`
}

// locationPatch lets a client move a sighting without resending the zoom, or the other way round.
type locationPatch struct {
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
	Zoom *float32 `json:"zoom"`
}

func (p locationPatch) apply(loc *models.Location) {
	if p.Lat != nil {
		loc.Lat = *p.Lat
	}
	if p.Lng != nil {
		loc.Lng = *p.Lng
	}
	if p.Zoom != nil {
		loc.Zoom = *p.Zoom
	}
}

func (p birdPatch) apply(b *models.Bird) {
	if p.Species != nil {
		b.Species = strings.TrimSpace(*p.Species)
	}
	if p.PlaceName != nil {
		b.PlaceName = *p.PlaceName
	}
	if p.GeoLocation != nil {
		p.GeoLocation.apply(&b.GeoLocation)
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
	if p.Date != nil {
		b.Date = *p.Date
	}
	if p.ImageURI != nil {
		b.ImageURI = *p.ImageURI
	}
}

func healthz(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			Birds:         len(d.Birds.FindAll()),
			UptimeSeconds: time.Since(d.StartTime).Seconds(),
			Version:       d.Version,
		})
	}
}

func listBirds(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		birds := d.Birds.FindAll()

		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if q == "" {
			writeJSON(w, http.StatusOK, birds)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		results := search.Search(birds, q, search.Options{Limit: limit})
		out := make([]models.Bird, 0, len(results))
		for _, res := range results {
			out = append(out, res.Bird)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getBird(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bird, ok := d.Birds.FindByID(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "bird not found")
			return
		}
		writeJSON(w, http.StatusOK, bird)
	}
}

func createBird(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patch, err := decodePatch(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		bird := models.NewBird("")
		bird.GeoLocation = d.DefaultLoc
		patch.apply(bird)
		if err := bird.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := d.Birds.Create(bird); err != nil {
			d.Logger.Error("create failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save bird")
			return
		}

		w.Header().Set("Location", "/api/birds/"+bird.ID)
		writeJSON(w, http.StatusCreated, bird)
	}
}

func updateBird(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bird, ok := d.Birds.FindByID(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "bird not found")
			return
		}

		patch, err := decodePatch(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		patch.apply(&bird)
		if err := bird.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := d.Birds.Update(bird); err != nil {
			d.Logger.Error("update failed", logger.String("id", bird.ID), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save bird")
			return
		}
		// Update is a no-op if a concurrent delete won the race.
		stored, ok := d.Birds.FindByID(bird.ID)
		if !ok {
			writeError(w, http.StatusNotFound, "bird not found")
			return
		}
		writeJSON(w, http.StatusOK, stored)
	}
}

func deleteBird(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bird, ok := d.Birds.FindByID(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "bird not found")
			return
		}

		if err := d.Birds.Delete(bird); err != nil {
			d.Logger.Error("delete failed", logger.String("id", bird.ID), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to delete bird")
			return
		}
		// A delete that lost a race with another delete still leaves the bird gone.
		w.WriteHeader(http.StatusNoContent)
	}
}

func mapMarkers(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(geo.Markers(d.Birds.FindAll()))
	}
}

type nearResult struct {
	Bird       models.Bird `json:"bird"`
	DistanceKm float64     `json:"distanceKm"`
}

func nearBirds(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
		lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
		if errLat != nil || errLng != nil {
			writeError(w, http.StatusBadRequest, "lat and lng are required numbers")
			return
		}
		radius := 10.0
		if raw := q.Get("radius"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || v <= 0 {
				writeError(w, http.StatusBadRequest, "radius must be a positive number")
				return
			}
			radius = v
		}

		nearby := geo.Near(d.Birds.FindAll(), models.Location{Lat: lat, Lng: lng}, radius)
		out := make([]nearResult, 0, len(nearby))
		for _, n := range nearby {
			out = append(out, nearResult{Bird: n.Bird, DistanceKm: n.DistanceKm})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func decodePatch(w http.ResponseWriter, r *http.Request) (birdPatch, error) {
	var p birdPatch
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return p, errors.New("invalid JSON body: " + err.Error())
	}
	return p, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
