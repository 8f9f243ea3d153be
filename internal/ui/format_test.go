// ABOUTME: Unit tests for terminal UI formatting
// ABOUTME: Tests human-readable output for viewpoints, history rows, and places

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/harper/vantage/internal/history"
	"github.com/harper/vantage/internal/models"
	"github.com/harper/vantage/internal/session"
)

func init() {
	color.NoColor = true
}

func TestFormatRange(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0.00m"},
		{999.5, "999.50m"},
		{1000, "1.00km"},
		{12500, "12.50km"},
	}
	for _, tt := range tests {
		if got := FormatRange(tt.meters); got != tt.want {
			t.Errorf("FormatRange(%v) = %q, want %q", tt.meters, got, tt.want)
		}
	}
}

func TestFormatViewpointDetails(t *testing.T) {
	vp := models.NewViewpoint("beijing", 116.4074, 39.9042, 43.5, 30, -45, 2500)
	got := FormatViewpointDetails(vp)
	want := "lon 116.407400°, lat 39.904200°, alt 43.50m | heading 30.00° | pitch -45.00° | range 2.50km"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatViewpointDetails_PartialFields(t *testing.T) {
	got := FormatViewpointDetails(models.Viewpoint{Range: models.Some(250.0)})
	if got != "range 250.00m" {
		t.Errorf("got %q", got)
	}
	if FormatViewpointDetails(models.Viewpoint{Name: models.Some("x")}) != "" {
		t.Error("name alone should produce no details")
	}
}

func TestFormatViewpoint(t *testing.T) {
	named := FormatViewpoint(models.NewFocalViewpoint(1, 2, 0).WithName("home"))
	if !strings.Contains(named, "home") || !strings.Contains(named, "lat 2.000000") {
		t.Errorf("unexpected output %q", named)
	}

	if !strings.Contains(FormatViewpoint(models.Viewpoint{}), "empty viewpoint") {
		t.Error("expected placeholder for empty viewpoint")
	}
}

func TestFormatHistoryItem(t *testing.T) {
	current := history.HistoryItem{
		Viewpoint:   models.NewFocalViewpoint(10, 20, 0),
		Index:       1,
		IsCurrent:   true,
		DisplayName: history.CurrentLabel,
	}
	out := FormatHistoryItem(current)
	if !strings.Contains(out, CurrentMarker+" "+history.CurrentLabel) {
		t.Errorf("current row should be marked, got %q", out)
	}
	if !strings.Contains(out, "\n") {
		t.Error("details should go on a second line")
	}

	plain := FormatHistoryItem(history.HistoryItem{Index: 0, DisplayName: "Viewpoint 1"})
	if strings.Contains(plain, CurrentMarker) {
		t.Error("non-current row should not be marked")
	}
	if strings.Contains(plain, "\n") {
		t.Error("row without details should be a single line")
	}
}

func TestFormatHistory(t *testing.T) {
	nav := history.New()
	nav.Push(models.NewFocalViewpoint(1, 1, 0))
	out := FormatHistory(nav.AllHistory(models.NewFocalViewpoint(2, 2, 0)))
	if !strings.Contains(out, "Viewpoint 1") || !strings.Contains(out, CurrentMarker) {
		t.Errorf("unexpected listing %q", out)
	}

	if !strings.Contains(FormatHistory(nil), "no history") {
		t.Error("expected placeholder for empty listing")
	}
}

func TestFormatState(t *testing.T) {
	out := FormatState(session.State{CanGoBack: true, Count: 3})
	if !strings.Contains(out, "back") || !strings.Contains(out, "(3 recorded)") {
		t.Errorf("unexpected state %q", out)
	}
}

func TestFormatPlace(t *testing.T) {
	place := models.NewPlace("chicago", models.NewFocalViewpoint(-87.6298, 41.8781, 0))
	out := FormatPlace(place)
	if !strings.Contains(out, "chicago") {
		t.Error("expected output to contain name")
	}
	if !strings.Contains(out, "41.878100") {
		t.Error("expected output to contain latitude")
	}
	if !strings.Contains(out, place.ID.String()[:8]) {
		t.Error("expected output to contain short ID")
	}

	bare := FormatPlace(models.NewPlace("bare", models.Viewpoint{}))
	if !strings.Contains(bare, "no location") {
		t.Errorf("expected no location marker, got %q", bare)
	}

	if !strings.Contains(FormatPlace(nil), "invalid place") {
		t.Error("expected placeholder for nil place")
	}
}

func TestFormatRelativeTime(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected string
	}{
		{"just now", time.Now(), "just now"},
		{"1 minute", time.Now().Add(-1 * time.Minute), "1 minute ago"},
		{"5 minutes", time.Now().Add(-5 * time.Minute), "5 minutes ago"},
		{"1 hour", time.Now().Add(-1 * time.Hour), "1 hour ago"},
		{"3 hours", time.Now().Add(-3 * time.Hour), "3 hours ago"},
		{"1 day", time.Now().Add(-24 * time.Hour), "1 day ago"},
		{"5 days", time.Now().Add(-5 * 24 * time.Hour), "5 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRelativeTime(tt.time)
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatRelativeTime_FutureTime(t *testing.T) {
	got := FormatRelativeTime(time.Now().Add(time.Hour))
	if !strings.Contains(got, "in the future") {
		t.Errorf("got %q, want 'in the future'", got)
	}
}
