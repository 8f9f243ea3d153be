// ABOUTME: GeoJSON generation utilities
// ABOUTME: Converts history listings and saved places to FeatureCollections

package geojson

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harper/vantage/internal/history"
	"github.com/harper/vantage/internal/models"
	"github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// Projection is an EPSG code identifying the output coordinate system.
type Projection int

const (
	// WGS84 keeps geographic longitude and latitude in degrees.
	WGS84 Projection = 4326
	// WebMercator projects to meters for slippy-map tooling.
	WebMercator Projection = 3857
)

func (p Projection) String() string {
	return fmt.Sprintf("EPSG:%d", int(p))
}

// ParseProjection accepts "4326", "EPSG:4326", "wgs84", "3857", "EPSG:3857" or "webmercator".
func ParseProjection(s string) (Projection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "4326", "epsg:4326", "wgs84":
		return WGS84, nil
	case "3857", "epsg:3857", "webmercator", "web-mercator":
		return WebMercator, nil
	default:
		return 0, fmt.Errorf("unsupported projection %q (use EPSG:4326 or EPSG:3857)", s)
	}
}

// project returns the function mapping lon/lat degrees to the output coordinates.
func (p Projection) project() (func(lon, lat float64) (float64, float64), error) {
	switch p {
	case WGS84:
		return func(lon, lat float64) (float64, float64) { return lon, lat }, nil
	case WebMercator:
		f := wgs84.EPSG().Transform(4326, 3857)
		return func(lon, lat float64) (float64, float64) {
			x, y, _ := f(lon, lat, 0)
			return x, y
		}, nil
	default:
		return nil, fmt.Errorf("unsupported projection %s", p)
	}
}

func point(x, y float64) (geom.Geometry, error) {
	pt, err := geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: x, Y: y},
		Type: geom.DimXY,
	})
	if err != nil {
		return geom.Geometry{}, err
	}
	return pt.AsGeometry(), nil
}

// viewProperties collects the viewpoint fields that are present.
func viewProperties(vp models.Viewpoint, props map[string]interface{}) map[string]interface{} {
	if fp, ok := vp.Focal.Get(); ok {
		props["altitude"] = fp.Alt
	}
	if h, ok := vp.Heading.Get(); ok {
		props["heading"] = h
	}
	if p, ok := vp.Pitch.Get(); ok {
		props["pitch"] = p
	}
	if r, ok := vp.Range.Get(); ok {
		props["range"] = r
	}
	return props
}

// ToPointsFeatureCollection converts a history listing to a FeatureCollection of Points.
// Entries without a focal point have no location and are skipped.
func ToPointsFeatureCollection(items []history.HistoryItem, proj Projection) (geom.GeoJSONFeatureCollection, error) {
	project, err := proj.project()
	if err != nil {
		return nil, err
	}

	features := make(geom.GeoJSONFeatureCollection, 0, len(items))
	for _, item := range items {
		fp, ok := item.Viewpoint.Focal.Get()
		if !ok {
			continue
		}
		g, err := point(project(fp.Lon, fp.Lat))
		if err != nil {
			return nil, fmt.Errorf("history entry %d: %w", item.Index, err)
		}
		features = append(features, geom.GeoJSONFeature{
			Geometry: g,
			ID:       item.Index,
			Properties: viewProperties(item.Viewpoint, map[string]interface{}{
				"index":   item.Index,
				"name":    item.DisplayName,
				"current": item.IsCurrent,
			}),
		})
	}
	return features, nil
}

// ToTrackFeature joins the located entries of a listing into a LineString in listing order.
// It reports false when fewer than two entries have a focal point.
func ToTrackFeature(items []history.HistoryItem, proj Projection) (geom.GeoJSONFeature, bool, error) {
	project, err := proj.project()
	if err != nil {
		return geom.GeoJSONFeature{}, false, err
	}

	var flat []float64
	for _, item := range items {
		fp, ok := item.Viewpoint.Focal.Get()
		if !ok {
			continue
		}
		x, y := project(fp.Lon, fp.Lat)
		flat = append(flat, x, y)
	}
	count := len(flat) / 2
	if count < 2 {
		return geom.GeoJSONFeature{}, false, nil
	}

	ls, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return geom.GeoJSONFeature{}, false, fmt.Errorf("build track: %w", err)
	}
	return geom.GeoJSONFeature{
		Geometry: ls.AsGeometry(),
		ID:       "track",
		Properties: map[string]interface{}{
			"name":        "track",
			"point_count": count,
		},
	}, true, nil
}

// HistoryCollection builds the points of a listing, followed by its track when requested.
func HistoryCollection(items []history.HistoryItem, proj Projection, withTrack bool) (geom.GeoJSONFeatureCollection, error) {
	fc, err := ToPointsFeatureCollection(items, proj)
	if err != nil {
		return nil, err
	}
	if !withTrack {
		return fc, nil
	}
	track, ok, err := ToTrackFeature(items, proj)
	if err != nil {
		return nil, err
	}
	if ok {
		fc = append(fc, track)
	}
	return fc, nil
}

// PlacesFeatureCollection converts saved places to a FeatureCollection of Points.
// Places without a focal point are skipped.
func PlacesFeatureCollection(places []*models.Place, proj Projection) (geom.GeoJSONFeatureCollection, error) {
	project, err := proj.project()
	if err != nil {
		return nil, err
	}

	features := make(geom.GeoJSONFeatureCollection, 0, len(places))
	for _, p := range places {
		fp, ok := p.Viewpoint.Focal.Get()
		if !ok {
			continue
		}
		g, err := point(project(fp.Lon, fp.Lat))
		if err != nil {
			return nil, fmt.Errorf("place %s: %w", p.Name, err)
		}
		features = append(features, geom.GeoJSONFeature{
			Geometry: g,
			ID:       p.ID.String(),
			Properties: viewProperties(p.Viewpoint, map[string]interface{}{
				"name":       p.Name,
				"created_at": p.CreatedAt.UTC().Format(time.RFC3339),
			}),
		})
	}
	return features, nil
}

// ToJSON serializes a FeatureCollection to JSON.
func ToJSON(fc geom.GeoJSONFeatureCollection) ([]byte, error) {
	return json.Marshal(fc)
}

// ToJSONIndent serializes a FeatureCollection to indented JSON.
func ToJSONIndent(fc geom.GeoJSONFeatureCollection) ([]byte, error) {
	return json.MarshalIndent(fc, "", "  ")
}
