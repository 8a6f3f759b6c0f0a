package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection()

	sel.Toggle("v-1")
	assert.True(t, sel.IsSelected("v-1"))
	assert.Equal(t, 1, sel.Count())

	sel.Toggle("v-1")
	assert.False(t, sel.IsSelected("v-1"))
	assert.Zero(t, sel.Count())
}

func TestSelectAllTogglesVisibleSet(t *testing.T) {
	sel := NewSelection()
	visible := []string{"v-1", "v-2", "v-3"}

	sel.SelectAll(visible)
	assert.Equal(t, 3, sel.Count())

	// All visible selected: a second call deselects them (involution).
	sel.SelectAll(visible)
	assert.Zero(t, sel.Count())
}

func TestSelectAllKeepsOffPageSelections(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("other-page")

	visible := []string{"v-1", "v-2"}
	sel.SelectAll(visible)
	require.Equal(t, 3, sel.Count())

	// Deselecting the visible set leaves the off-page selection alone.
	sel.SelectAll(visible)
	assert.Equal(t, 1, sel.Count())
	assert.True(t, sel.IsSelected("other-page"))
}

func TestSelectAllPartialSelectsRest(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("v-1")

	sel.SelectAll([]string{"v-1", "v-2", "v-3"})
	assert.Equal(t, 3, sel.Count())
}

func TestSelectAllEmptyVisibleIsNoop(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("v-1")

	sel.SelectAll(nil)
	assert.Equal(t, 1, sel.Count())
}

func TestPruneDropsDeletedRecords(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("v-1")
	sel.Toggle("v-2")
	sel.Toggle("v-3")

	sel.Prune([]string{"v-2", "v-4"})

	assert.False(t, sel.IsSelected("v-1"))
	assert.True(t, sel.IsSelected("v-2"))
	assert.False(t, sel.IsSelected("v-3"))
	assert.Equal(t, 1, sel.Count())
}

func TestClear(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("v-1")
	sel.Toggle("v-2")

	sel.Clear()
	assert.Zero(t, sel.Count())
	assert.Empty(t, sel.IDs())
}
