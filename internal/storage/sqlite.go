// ABOUTME: SQLite storage implementation for saved places
// ABOUTME: Provides local-only persistence using pure Go SQLite driver

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/vantage/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements Repository with a local SQLite database.
type SQLiteDB struct {
	db   *sql.DB
	path string
}

// Compile-time check that SQLiteDB implements Repository.
var _ Repository = (*SQLiteDB)(nil)

// NewSQLiteDB creates a new SQLite database at the given path.
// Creates the directory and database file if they don't exist.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteDB{db: db, path: path}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// migrate creates or updates the database schema.
// A NULL longitude marks a viewpoint without a focal point.
func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS places (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			longitude REAL,
			latitude REAL,
			altitude REAL,
			heading REAL,
			pitch REAL,
			range_m REAL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_places_name ON places(name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Path returns the database file path.
func (s *SQLiteDB) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Reset clears all data from the database.
func (s *SQLiteDB) Reset() error {
	_, err := s.db.Exec("DELETE FROM places;")
	return err
}

// CreatePlace stores a new place. Names are unique.
func (s *SQLiteDB) CreatePlace(place *models.Place) error {
	if _, err := s.GetPlaceByName(place.Name); err == nil {
		return fmt.Errorf("place %q: %w", place.Name, ErrDuplicateName)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	cols := viewpointColumns(place.Viewpoint)
	_, err := s.db.Exec(
		`INSERT INTO places (id, name, longitude, latitude, altitude, heading, pitch, range_m, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		place.ID.String(), place.Name,
		cols.lon, cols.lat, cols.alt, cols.heading, cols.pitch, cols.rng,
		place.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert place: %w", err)
	}
	return nil
}

// GetPlace retrieves a place by its UUID.
func (s *SQLiteDB) GetPlace(id uuid.UUID) (*models.Place, error) {
	row := s.db.QueryRow(selectPlace+" WHERE id = ?", id.String())
	return scanPlace(row)
}

// GetPlaceByName retrieves a place by its name.
func (s *SQLiteDB) GetPlaceByName(name string) (*models.Place, error) {
	row := s.db.QueryRow(selectPlace+" WHERE name = ?", name)
	return scanPlace(row)
}

// FindPlace resolves a place by exact name, then by ID or unique ID prefix.
func (s *SQLiteDB) FindPlace(ref string) (*models.Place, error) {
	if place, err := s.GetPlaceByName(ref); err == nil {
		return place, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if id, err := uuid.Parse(ref); err == nil {
		return s.GetPlace(id)
	}

	ref = strings.ToLower(ref)
	if len(ref) < 4 {
		return nil, ErrNotFound
	}
	rows, err := s.db.Query(selectPlace+" WHERE id LIKE ? LIMIT 2", ref+"%")
	if err != nil {
		return nil, fmt.Errorf("query places: %w", err)
	}
	defer func() { _ = rows.Close() }()

	places, err := scanPlaces(rows)
	if err != nil {
		return nil, err
	}
	switch len(places) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return places[0], nil
	default:
		return nil, fmt.Errorf("ambiguous place id prefix %q", ref)
	}
}

// ListPlaces returns all places sorted by name.
func (s *SQLiteDB) ListPlaces() ([]*models.Place, error) {
	rows, err := s.db.Query(selectPlace + " ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query places: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanPlaces(rows)
}

// DeletePlace removes a place.
func (s *SQLiteDB) DeletePlace(id uuid.UUID) error {
	res, err := s.db.Exec("DELETE FROM places WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete place: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

const selectPlace = `SELECT id, name, longitude, latitude, altitude, heading, pitch, range_m, created_at FROM places`

type placeColumns struct {
	lon, lat, alt, heading, pitch, rng sql.NullFloat64
}

func nullable(o models.Optional[float64]) sql.NullFloat64 {
	v, ok := o.Get()
	return sql.NullFloat64{Float64: v, Valid: ok}
}

func optional(n sql.NullFloat64) models.Optional[float64] {
	if !n.Valid {
		return models.None[float64]()
	}
	return models.Some(n.Float64)
}

func viewpointColumns(vp models.Viewpoint) placeColumns {
	cols := placeColumns{
		heading: nullable(vp.Heading),
		pitch:   nullable(vp.Pitch),
		rng:     nullable(vp.Range),
	}
	if fp, ok := vp.Focal.Get(); ok {
		cols.lon = sql.NullFloat64{Float64: fp.Lon, Valid: true}
		cols.lat = sql.NullFloat64{Float64: fp.Lat, Valid: true}
		cols.alt = sql.NullFloat64{Float64: fp.Alt, Valid: true}
	}
	return cols
}

func (c placeColumns) viewpoint(name string) models.Viewpoint {
	vp := models.Viewpoint{
		Name:    models.Some(name),
		Heading: optional(c.heading),
		Pitch:   optional(c.pitch),
		Range:   optional(c.rng),
	}
	if c.lon.Valid && c.lat.Valid {
		vp.Focal = models.Some(models.FocalPoint{Lon: c.lon.Float64, Lat: c.lat.Float64, Alt: c.alt.Float64})
	}
	return vp
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlaceFrom(sc scanner) (*models.Place, error) {
	var idStr string
	var place models.Place
	var cols placeColumns
	err := sc.Scan(&idStr, &place.Name,
		&cols.lon, &cols.lat, &cols.alt, &cols.heading, &cols.pitch, &cols.rng,
		&place.CreatedAt)
	if err != nil {
		return nil, err
	}
	place.ID, _ = uuid.Parse(idStr)
	place.Viewpoint = cols.viewpoint(place.Name)
	return &place, nil
}

func scanPlace(row *sql.Row) (*models.Place, error) {
	place, err := scanPlaceFrom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan place: %w", err)
	}
	return place, nil
}

func scanPlaces(rows *sql.Rows) ([]*models.Place, error) {
	var places []*models.Place
	for rows.Next() {
		place, err := scanPlaceFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		places = append(places, place)
	}
	return places, rows.Err()
}
