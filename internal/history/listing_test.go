// ABOUTME: Tests for the history listing builder
// ABOUTME: Verifies chronological order, indexing, and display names

package history

import (
	"testing"

	"github.com/harper/vantage/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllHistory_EmptyHasOnlyCurrent(t *testing.T) {
	nav := New()
	items := nav.AllHistory(models.Viewpoint{})

	require.Len(t, items, 1)
	assert.True(t, items[0].IsCurrent)
	assert.Equal(t, 0, items[0].Index)
	assert.Equal(t, CurrentLabel, items[0].DisplayName)
}

func TestAllHistory_ChronologicalOrder(t *testing.T) {
	nav := New()
	a := distinct(1).WithName("A")
	b := distinct(2).WithName("B")
	c := distinct(3).WithName("C")
	d := distinct(4).WithName("D")

	// Visit A, B, C, D then step back twice: current is B.
	nav.Push(a)
	nav.Push(b)
	nav.Push(c)
	current := d
	for i := 0; i < 2; i++ {
		prev, ok := nav.Back(current)
		require.True(t, ok)
		current = prev
	}
	require.Equal(t, "B", current.Label())

	items := nav.AllHistory(current)
	var names []string
	for i, item := range items {
		assert.Equal(t, i, item.Index)
		names = append(names, item.DisplayName)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, names)

	assert.False(t, items[0].IsCurrent)
	currentCount := 0
	for _, item := range items {
		if item.IsCurrent {
			currentCount++
			assert.Equal(t, "B", item.DisplayName)
		}
	}
	assert.Equal(t, 1, currentCount)
}

func TestAllHistory_SynthesizedNames(t *testing.T) {
	nav := New()
	nav.Push(distinct(1))
	nav.Push(distinct(2).WithName("named"))
	nav.Push(distinct(3))
	prev, ok := nav.Back(distinct(4))
	require.True(t, ok)

	items := nav.AllHistory(prev)
	require.Len(t, items, 4)

	assert.Equal(t, "Viewpoint 1", items[0].DisplayName)
	assert.Equal(t, "named", items[1].DisplayName)
	assert.Equal(t, CurrentLabel, items[2].DisplayName)
	assert.True(t, items[2].IsCurrent)
	assert.Equal(t, "Viewpoint 3", items[3].DisplayName, "forward entries continue the numbering")
}

func TestAllHistory_EmptyNameFallsBack(t *testing.T) {
	nav := New()
	nav.Push(distinct(1).WithName(""))

	items := nav.AllHistory(distinct(2).WithName(""))
	assert.Equal(t, "Viewpoint 1", items[0].DisplayName)
	assert.Equal(t, CurrentLabel, items[1].DisplayName)
}

func TestAllHistory_DoesNotMutate(t *testing.T) {
	nav, rec := newRecordingNavigator(t)
	nav.Push(distinct(1))
	before := len(rec.calls)

	_ = nav.AllHistory(distinct(2))
	_ = nav.AllHistory(distinct(2))

	assert.Equal(t, 1, nav.Count())
	assert.Len(t, rec.calls, before)
}
