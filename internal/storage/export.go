// ABOUTME: Export and import functionality for saved places
// ABOUTME: Supports a versioned YAML backup format

package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/vantage/internal/models"
	"gopkg.in/yaml.v3"
)

// BackupVersion is the current backup format version.
const BackupVersion = "1.0"

// BackupTool identifies backups written by this program.
const BackupTool = "vantage"

// Backup represents the YAML backup format.
type Backup struct {
	Version    string        `yaml:"version"`
	ExportedAt time.Time     `yaml:"exported_at"`
	Tool       string        `yaml:"tool"`
	Places     []PlaceBackup `yaml:"places"`
}

// PlaceBackup represents a place in the backup format.
// Pointer fields are omitted when the viewpoint does not carry them.
type PlaceBackup struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Longitude *float64  `yaml:"longitude,omitempty"`
	Latitude  *float64  `yaml:"latitude,omitempty"`
	Altitude  *float64  `yaml:"altitude,omitempty"`
	Heading   *float64  `yaml:"heading,omitempty"`
	Pitch     *float64  `yaml:"pitch,omitempty"`
	Range     *float64  `yaml:"range,omitempty"`
	CreatedAt time.Time `yaml:"created_at"`
}

// ImportResult reports what an import did.
type ImportResult struct {
	Imported int
	Skipped  []string
}

func toPlaceBackup(p *models.Place) PlaceBackup {
	b := PlaceBackup{
		ID:        p.ID.String(),
		Name:      p.Name,
		Heading:   p.Viewpoint.Heading.Ptr(),
		Pitch:     p.Viewpoint.Pitch.Ptr(),
		Range:     p.Viewpoint.Range.Ptr(),
		CreatedAt: p.CreatedAt,
	}
	if fp, ok := p.Viewpoint.Focal.Get(); ok {
		b.Longitude = &fp.Lon
		b.Latitude = &fp.Lat
		b.Altitude = &fp.Alt
	}
	return b
}

func (b PlaceBackup) place() (*models.Place, error) {
	id, err := uuid.Parse(b.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid place ID %s: %w", b.ID, err)
	}
	if err := models.ValidateName(b.Name); err != nil {
		return nil, fmt.Errorf("place %s: %w", b.ID, err)
	}

	vp := models.Viewpoint{
		Name:    models.Some(b.Name),
		Heading: models.FromPtr(b.Heading),
		Pitch:   models.FromPtr(b.Pitch),
		Range:   models.FromPtr(b.Range),
	}
	if b.Longitude != nil && b.Latitude != nil {
		fp := models.FocalPoint{Lon: *b.Longitude, Lat: *b.Latitude}
		if b.Altitude != nil {
			fp.Alt = *b.Altitude
		}
		vp.Focal = models.Some(fp)
	}
	if err := vp.Validate(); err != nil {
		return nil, fmt.Errorf("place %s: %w", b.Name, err)
	}

	return &models.Place{
		ID:        id,
		Name:      b.Name,
		Viewpoint: vp,
		CreatedAt: b.CreatedAt,
	}, nil
}

// ExportToYAML exports all saved places to YAML format.
func ExportToYAML(repo PlaceRepository) ([]byte, error) {
	places, err := repo.ListPlaces()
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}

	backup := Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       BackupTool,
		Places:     make([]PlaceBackup, len(places)),
	}
	for i, p := range places {
		backup.Places[i] = toPlaceBackup(p)
	}

	return yaml.Marshal(backup)
}

// ImportFromYAML restores places from YAML format.
// Places whose name already exists are skipped rather than overwritten.
func ImportFromYAML(repo PlaceRepository, data []byte) (*ImportResult, error) {
	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if backup.Version != BackupVersion {
		return nil, fmt.Errorf("unsupported backup version: %s (expected %s)", backup.Version, BackupVersion)
	}
	if backup.Tool != BackupTool {
		return nil, fmt.Errorf("wrong tool: %s (expected %s)", backup.Tool, BackupTool)
	}

	result := &ImportResult{}
	for _, b := range backup.Places {
		place, err := b.place()
		if err != nil {
			return result, err
		}
		if err := repo.CreatePlace(place); err != nil {
			if errors.Is(err, ErrDuplicateName) {
				result.Skipped = append(result.Skipped, place.Name)
				continue
			}
			return result, fmt.Errorf("create place %s: %w", place.Name, err)
		}
		result.Imported++
	}

	return result, nil
}
