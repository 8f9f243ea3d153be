// ABOUTME: Tests for viewpoint equality and similarity checks
// ABOUTME: Covers presence handling, tolerances, and ignored fields

package history

import (
	"testing"

	"github.com/harper/vantage/internal/models"
	"github.com/stretchr/testify/assert"
)

func vpAt(lon, lat, rng float64) models.Viewpoint {
	return models.NewFocalViewpoint(lon, lat, 0).WithRange(rng)
}

func TestViewpointsEqual(t *testing.T) {
	base := models.NewViewpoint("home", 10, 20, 0, 0, -90, 1000)

	tests := []struct {
		name string
		a, b models.Viewpoint
		want bool
	}{
		{"identical", base, base, true},
		{"within_epsilon", base, models.NewViewpoint("home", 10+5e-7, 20-5e-7, 0, 0, -90, 1000), true},
		{"beyond_epsilon", base, models.NewViewpoint("home", 10+2e-6, 20, 0, 0, -90, 1000), false},
		{"different_name", base, base.WithName("work"), false},
		{"name_presence_differs", models.NewFocalViewpoint(10, 20, 0), models.NewFocalViewpoint(10, 20, 0).WithName(""), false},
		{"ignores_altitude_heading_pitch_range", base, models.NewViewpoint("home", 10, 20, 500, 45, -10, 99999), true},
		{"both_without_focal", models.Viewpoint{Name: models.Some("x")}, models.Viewpoint{Name: models.Some("x")}, true},
		{"focal_presence_differs", models.Viewpoint{Name: models.Some("home")}, base, false},
		{"empty_viewpoints", models.Viewpoint{}, models.Viewpoint{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ViewpointsEqual(tt.a, tt.b))
			assert.Equal(t, tt.want, ViewpointsEqual(tt.b, tt.a), "equality must be symmetric")
		})
	}
}

func TestIsSimilar(t *testing.T) {
	tests := []struct {
		name            string
		candidate, last models.Viewpoint
		want            bool
	}{
		{"close_position_close_range", vpAt(0.0005, 0, 1050), vpAt(0, 0, 1000), true},
		{"lon_too_far", vpAt(0.01, 0, 1000), vpAt(0, 0, 1000), false},
		{"lat_too_far", vpAt(0, 0.002, 1000), vpAt(0, 0, 1000), false},
		{"lat_at_threshold_is_not_similar", vpAt(0, 0.001, 1000), vpAt(0, 0, 1000), false},
		{"range_exactly_ten_percent", vpAt(0, 0, 900), vpAt(0, 0, 1000), true},
		{"range_too_different", vpAt(0, 0, 2000), vpAt(0, 0, 1000), false},
		{"candidate_range_unset", models.NewFocalViewpoint(0, 0, 0), vpAt(0, 0, 1000), true},
		{"last_range_unset", vpAt(0, 0, 5000), models.NewFocalViewpoint(0, 0, 0), true},
		{"both_ranges_zero", vpAt(0, 0, 0), vpAt(0, 0, 0), true},
		{"candidate_without_focal", models.Viewpoint{Range: models.Some(1000.0)}, vpAt(0, 0, 1000), false},
		{"last_without_focal", vpAt(0, 0, 1000), models.Viewpoint{Range: models.Some(1000.0)}, false},
		{"ignores_heading_and_pitch", models.NewViewpoint("", 0, 0, 0, 180, 0, 1000), models.NewViewpoint("", 0, 0, 0, 0, -90, 1000), true},
		{"ignores_names", vpAt(0, 0, 1000).WithName("a"), vpAt(0, 0, 1000).WithName("b"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSimilar(tt.candidate, tt.last))
		})
	}
}
