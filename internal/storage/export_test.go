// ABOUTME: Tests for export and import functionality
// ABOUTME: Covers the YAML backup format and duplicate handling on restore

package storage

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/harper/vantage/internal/models"
)

func TestExportToYAML(t *testing.T) {
	db := testDB(t)

	mustCreate(t, db, "chicago", models.NewViewpoint("", -87.6298, 41.8781, 0, 0, -45, 1500))
	mustCreate(t, db, "bare", models.Viewpoint{})

	data, err := ExportToYAML(db)
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}

	yamlStr := string(data)

	if !strings.Contains(yamlStr, "version: \"1.0\"") {
		t.Error("missing version header")
	}
	if !strings.Contains(yamlStr, "tool: vantage") {
		t.Error("missing tool header")
	}
	if !strings.Contains(yamlStr, "exported_at:") {
		t.Error("missing exported_at header")
	}

	if !strings.Contains(yamlStr, "name: chicago") {
		t.Error("missing place name")
	}
	if !strings.Contains(yamlStr, "latitude: 41.8781") {
		t.Error("missing latitude")
	}
	if !strings.Contains(yamlStr, "range: 1500") {
		t.Error("missing range")
	}
	if strings.Count(yamlStr, "longitude:") != 1 {
		t.Error("place without focal point should omit coordinates")
	}
}

func TestImportFromYAML(t *testing.T) {
	db := testDB(t)

	yaml := `version: "1.0"
exported_at: "2026-01-31T12:00:00Z"
tool: vantage

places:
  - id: "11111111-1111-1111-1111-111111111111"
    name: "chicago"
    longitude: -87.6298
    latitude: 41.8781
    altitude: 180
    range: 1500
    created_at: "2024-12-14T00:00:00Z"
  - id: "22222222-2222-2222-2222-222222222222"
    name: "heading only"
    heading: 270
    created_at: "2024-12-14T00:00:00Z"
`

	result, err := ImportFromYAML(db, []byte(yaml))
	if err != nil {
		t.Fatalf("failed to import: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("got %d imported, want 2", result.Imported)
	}

	place, err := db.GetPlace(uuid.MustParse("11111111-1111-1111-1111-111111111111"))
	if err != nil {
		t.Fatalf("failed to get imported place: %v", err)
	}
	fp, ok := place.Viewpoint.Focal.Get()
	if !ok || fp.Lat != 41.8781 || fp.Alt != 180 {
		t.Errorf("unexpected focal point %+v (set=%v)", fp, ok)
	}
	if place.Viewpoint.Heading.IsSet() {
		t.Error("heading should be absent")
	}

	headingOnly, err := db.GetPlaceByName("heading only")
	if err != nil {
		t.Fatalf("failed to get imported place: %v", err)
	}
	if headingOnly.Viewpoint.Focal.IsSet() {
		t.Error("focal point should be absent")
	}
}

func TestImportFromYAML_SkipsDuplicateNames(t *testing.T) {
	db := testDB(t)
	mustCreate(t, db, "home", models.NewFocalViewpoint(0, 0, 0))

	yaml := `version: "1.0"
tool: vantage
places:
  - id: "33333333-3333-3333-3333-333333333333"
    name: "home"
    longitude: 10
    latitude: 10
  - id: "44444444-4444-4444-4444-444444444444"
    name: "work"
    longitude: 20
    latitude: 20
`

	result, err := ImportFromYAML(db, []byte(yaml))
	if err != nil {
		t.Fatalf("failed to import: %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("got %d imported, want 1", result.Imported)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "home" {
		t.Errorf("got skipped %v, want [home]", result.Skipped)
	}

	home, err := db.GetPlaceByName("home")
	if err != nil {
		t.Fatalf("failed to get home: %v", err)
	}
	if fp, _ := home.Viewpoint.Focal.Get(); fp.Lon != 0 {
		t.Error("existing place should not be overwritten")
	}
}

func TestImportFromYAML_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad_version", "version: \"2.0\"\ntool: vantage\n"},
		{"wrong_tool", "version: \"1.0\"\ntool: position\n"},
		{"bad_yaml", "version: [unterminated"},
		{"bad_id", "version: \"1.0\"\ntool: vantage\nplaces:\n  - id: nope\n    name: x\n"},
		{"bad_coords", "version: \"1.0\"\ntool: vantage\nplaces:\n  - id: \"55555555-5555-5555-5555-555555555555\"\n    name: x\n    longitude: 0\n    latitude: 95\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDB(t)
			if _, err := ImportFromYAML(db, []byte(tt.yaml)); err == nil {
				t.Error("expected import error")
			}
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := testDB(t)
	mustCreate(t, src, "paris", models.NewViewpoint("", 2.3522, 48.8566, 35, 10, -30, 800))

	data, err := ExportToYAML(src)
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}

	dst := testDB(t)
	if _, err := ImportFromYAML(dst, data); err != nil {
		t.Fatalf("failed to import: %v", err)
	}

	got, err := dst.GetPlaceByName("paris")
	if err != nil {
		t.Fatalf("failed to get place: %v", err)
	}
	if p, _ := got.Viewpoint.Pitch.Get(); p != -30 {
		t.Errorf("got pitch %v, want -30", p)
	}
}
