// ABOUTME: Display-ready listing of the navigation history
// ABOUTME: Orders entries oldest to newest with the current viewpoint in between

package history

import (
	"fmt"

	"github.com/harper/vantage/internal/models"
)

// CurrentLabel names the current entry when its viewpoint has no name.
const CurrentLabel = "Current Viewpoint"

// HistoryItem is one row of a history listing.
type HistoryItem struct {
	Viewpoint   models.Viewpoint `json:"viewpoint"`
	Index       int              `json:"index"`
	IsCurrent   bool             `json:"is_current"`
	DisplayName string           `json:"display_name"`
}

// AllHistory lists the back stack oldest first, then current, then the forward stack
// in pop order, so the result reads chronologically. Entries are indexed 0..N-1.
// Unnamed entries are labelled by their 1-based position among the non-current entries.
func (n *Navigator) AllHistory(current models.Viewpoint) []HistoryItem {
	back := n.back.oldestFirst()
	forward := n.forward.newestFirst()

	items := make([]HistoryItem, 0, len(back)+1+len(forward))
	ordinal := 0

	add := func(vp models.Viewpoint) {
		ordinal++
		items = append(items, HistoryItem{
			Viewpoint:   vp,
			Index:       len(items),
			DisplayName: displayName(vp, fmt.Sprintf("Viewpoint %d", ordinal)),
		})
	}

	for _, vp := range back {
		add(vp)
	}

	items = append(items, HistoryItem{
		Viewpoint:   current,
		Index:       len(items),
		IsCurrent:   true,
		DisplayName: displayName(current, CurrentLabel),
	})

	for _, vp := range forward {
		add(vp)
	}

	return items
}

func displayName(vp models.Viewpoint, fallback string) string {
	if name := vp.Label(); name != "" {
		return name
	}
	return fallback
}
