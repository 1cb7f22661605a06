// ABOUTME: Tests for sighting text search.
// ABOUTME: Covers field weighting, stable ordering, limits, and empty queries.
package search

import (
	"testing"

	"github.com/2389-research/birdlog/internal/models"
)

func sampleBirds() []models.Bird {
	return []models.Bird{
		{ID: "1", Species: "Robin", PlaceName: "Back garden", Notes: "singing on the fence", Date: "3/4/2024"},
		{ID: "2", Species: "Wren", PlaceName: "Robin Hill", Notes: "", Date: "5/4/2024"},
		{ID: "3", Species: "Grey Heron", PlaceName: "Quay", Notes: "chased by a robin", Date: "6/4/2024"},
		{ID: "4", Species: "Song Thrush", PlaceName: "Garden", Notes: "", Date: "3/4/2024"},
	}
}

func TestScoreWeights(t *testing.T) {
	birds := sampleBirds()

	species := Score(birds[0], "robin")
	place := Score(birds[1], "robin")
	notes := Score(birds[2], "robin")

	if !(species > place && place > notes && notes > 0) {
		t.Errorf("expected species > place > notes > 0, got %v %v %v", species, place, notes)
	}
	if Score(birds[3], "robin") != 0 {
		t.Error("expected no match for Song Thrush")
	}
}

func TestScoreExactSpeciesBeatsPartial(t *testing.T) {
	exact := Score(models.Bird{Species: "Wren"}, "wren")
	partial := Score(models.Bird{Species: "Wrentit"}, "wren")
	if exact <= partial {
		t.Errorf("exact %v should beat partial %v", exact, partial)
	}
}

func TestSearchOrdering(t *testing.T) {
	results := Search(sampleBirds(), "ROBIN", Options{})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	want := []string{"1", "2", "3"}
	for i, r := range results {
		if r.Bird.ID != want[i] {
			t.Errorf("result %d = %s, want %s", i, r.Bird.ID, want[i])
		}
	}
}

func TestSearchStableForTies(t *testing.T) {
	results := Search(sampleBirds(), "garden", Options{})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Bird.ID != "1" || results[1].Bird.ID != "4" {
		t.Errorf("tie order = %s, %s; want journal order", results[0].Bird.ID, results[1].Bird.ID)
	}
}

func TestSearchDate(t *testing.T) {
	results := Search(sampleBirds(), "3/4/2024", Options{})
	if len(results) != 2 {
		t.Errorf("expected 2 date matches, got %d", len(results))
	}
}

func TestSearchLimit(t *testing.T) {
	results := Search(sampleBirds(), "robin", Options{Limit: 1})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Bird.ID != "1" {
		t.Errorf("top result = %s, want 1", results[0].Bird.ID)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	if results := Search(sampleBirds(), "  ", Options{}); len(results) != 0 {
		t.Errorf("expected no results for blank query, got %d", len(results))
	}
}
