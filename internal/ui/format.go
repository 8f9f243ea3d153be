// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for viewpoints, history listings, and places

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harper/vantage/internal/history"
	"github.com/harper/vantage/internal/models"
	"github.com/harper/vantage/internal/session"
)

// CurrentMarker prefixes the history row the camera is showing.
const CurrentMarker = "[current]"

// FormatRange renders a camera range in meters, switching to kilometers at 1000m.
func FormatRange(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.2fkm", meters/1000)
	}
	return fmt.Sprintf("%.2fm", meters)
}

// FormatViewpointDetails renders the present fields of a viewpoint on one line.
// It returns "" when nothing but the name is set.
func FormatViewpointDetails(vp models.Viewpoint) string {
	var parts []string
	if fp, ok := vp.Focal.Get(); ok {
		parts = append(parts, fmt.Sprintf("lon %.6f°, lat %.6f°, alt %.2fm", fp.Lon, fp.Lat, fp.Alt))
	}
	if h, ok := vp.Heading.Get(); ok {
		parts = append(parts, fmt.Sprintf("heading %.2f°", h))
	}
	if p, ok := vp.Pitch.Get(); ok {
		parts = append(parts, fmt.Sprintf("pitch %.2f°", p))
	}
	if r, ok := vp.Range.Get(); ok {
		parts = append(parts, "range "+FormatRange(r))
	}
	return strings.Join(parts, " | ")
}

// FormatViewpoint formats a viewpoint for terminal display.
func FormatViewpoint(vp models.Viewpoint) string {
	details := FormatViewpointDetails(vp)
	name := vp.Label()

	switch {
	case name != "" && details != "":
		return fmt.Sprintf("%s %s", color.CyanString(name), color.New(color.Faint).Sprint(details))
	case name != "":
		return color.CyanString(name)
	case details != "":
		return color.CyanString(details)
	default:
		return color.New(color.Faint).Sprint("(empty viewpoint)")
	}
}

// FormatHistoryItem formats one row of a history listing.
// The current row is marked and the details go on an indented second line.
func FormatHistoryItem(item history.HistoryItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%2d. ", item.Index)
	if item.IsCurrent {
		b.WriteString(color.New(color.FgYellow, color.Bold).Sprint(CurrentMarker + " " + item.DisplayName))
	} else {
		b.WriteString(color.GreenString(item.DisplayName))
	}
	if details := FormatViewpointDetails(item.Viewpoint); details != "" {
		b.WriteString("\n      ")
		b.WriteString(color.New(color.Faint).Sprint(details))
	}
	return b.String()
}

// FormatHistory formats a whole listing, one item per row.
func FormatHistory(items []history.HistoryItem) string {
	if len(items) == 0 {
		return color.New(color.Faint).Sprint("(no history)")
	}
	rows := make([]string, len(items))
	for i, item := range items {
		rows[i] = FormatHistoryItem(item)
	}
	return strings.Join(rows, "\n")
}

// FormatState renders the back/forward availability like a toolbar.
func FormatState(st session.State) string {
	arrow := func(label string, enabled bool) string {
		if enabled {
			return color.GreenString(label)
		}
		return color.New(color.Faint).Sprint(label)
	}
	return fmt.Sprintf("%s %s  %s",
		arrow("◀ back", st.CanGoBack),
		arrow("forward ▶", st.CanGoForward),
		color.New(color.Faint).Sprintf("(%d recorded)", st.Count))
}

// FormatPlace formats a saved place with its viewpoint and age.
func FormatPlace(place *models.Place) string {
	if place == nil {
		return color.New(color.Faint).Sprint("(invalid place)")
	}
	details := FormatViewpointDetails(place.Viewpoint)
	if details == "" {
		details = "no location"
	}
	return fmt.Sprintf("%s %s %s (%s)",
		color.GreenString(place.Name),
		color.New(color.Faint).Sprint(place.ID.String()[:8]),
		details,
		color.New(color.Faint).Sprint(FormatRelativeTime(place.CreatedAt)))
}

// FormatRelativeTime formats a time as relative to now.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	// Handle future times (clock skew, bad data)
	if diff < 0 {
		return color.YellowString("in the future")
	}

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(diff.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
