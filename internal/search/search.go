// ABOUTME: Text search over bird sightings with simple field-weighted scoring.
// ABOUTME: Matches case-insensitive substrings in species, place, notes, and date.
package search

import (
	"sort"
	"strings"

	"github.com/2389-research/birdlog/internal/models"
)

// DefaultLimit caps results when Options.Limit is not set.
const DefaultLimit = 10

// Field weights. A species hit outranks a place hit, and so on.
const (
	weightSpecies = 4.0
	weightPlace   = 2.0
	weightNotes   = 1.0
	weightDate    = 0.5
)

// Result pairs a sighting with its relevance score.
type Result struct {
	Bird  models.Bird
	Score float64
}

// Options configures a search operation.
type Options struct {
	Limit int
}

// Score returns how well bird matches query. Zero means no match.
func Score(bird models.Bird, query string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	var score float64
	if strings.Contains(strings.ToLower(bird.Species), q) {
		score += weightSpecies
		// Exact species name beats a partial one
		if strings.EqualFold(bird.Species, q) {
			score += weightSpecies
		}
	}
	if strings.Contains(strings.ToLower(bird.PlaceName), q) {
		score += weightPlace
	}
	if strings.Contains(strings.ToLower(bird.Notes), q) {
		score += weightNotes
	}
	if strings.Contains(bird.Date, q) {
		score += weightDate
	}
	return score
}

// Search returns sightings matching query, best first. Equal scores keep journal order.
func Search(birds []models.Bird, query string, opts Options) []Result {
	var results []Result
	for _, b := range birds {
		if s := Score(b, query); s > 0 {
			results = append(results, Result{Bird: b, Score: s})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > len(results) {
		limit = len(results)
	}
	return results[:limit]
}
