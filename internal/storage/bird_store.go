// ABOUTME: Interface definition for bird sighting storage.
// ABOUTME: Defines the contract for listing, creating, updating, and deleting sightings.
package storage

import (
	"github.com/2389-research/birdlog/internal/models"
)

// BirdStore defines operations for bird sighting persistence.
// Every mutating call persists the whole collection before returning.
type BirdStore interface {
	// FindAll returns a copy of all sightings in insertion order.
	FindAll() []models.Bird

	// FindByID returns the sighting with the given ID, if any.
	FindByID(id string) (models.Bird, bool)

	// Create assigns a fresh ID to bird (discarding any it carries), appends it, and persists.
	Create(bird *models.Bird) error

	// Update replaces the sighting with the same ID in place. Unknown IDs are ignored.
	Update(bird models.Bird) error

	// Delete removes sightings with the same ID. Unknown IDs are ignored.
	Delete(bird models.Bird) error

	// Close releases any resources held by the store.
	Close() error
}
