// ABOUTME: Repository interface for saved places storage
// ABOUTME: Enables testability and storage backend swapping

package storage

import (
	"github.com/google/uuid"
	"github.com/harper/vantage/internal/models"
)

// PlaceRepository defines operations for managing saved places.
type PlaceRepository interface {
	CreatePlace(place *models.Place) error
	GetPlace(id uuid.UUID) (*models.Place, error)
	GetPlaceByName(name string) (*models.Place, error)
	ListPlaces() ([]*models.Place, error)
	DeletePlace(id uuid.UUID) error
}

// Repository combines place operations with lifecycle management.
type Repository interface {
	PlaceRepository
	Close() error
	Reset() error
}
