package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripPages(strip []PageItem) []int {
	var pages []int
	for _, item := range strip {
		if !item.Ellipsis {
			pages = append(pages, item.Page)
		}
	}
	return pages
}

func TestPageStripSmallTotalsAreVerbatim(t *testing.T) {
	strip := PageStrip(2, 4, 7)
	assert.Equal(t, []int{1, 2, 3, 4}, stripPages(strip))
	for _, item := range strip {
		assert.False(t, item.Ellipsis)
	}
}

func TestPageStripCompaction(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		pages   []int
	}{
		{"middle", 10, 20, []int{1, 9, 10, 11, 20}},
		{"near start", 2, 20, []int{1, 2, 3, 20}},
		{"start", 1, 20, []int{1, 2, 20}},
		{"near end", 19, 20, []int{1, 18, 19, 20}},
		{"end", 20, 20, []int{1, 19, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strip := PageStrip(tt.current, tt.total, 7)
			require.Equal(t, tt.pages, stripPages(strip))
		})
	}
}

func TestPageStripInvariants(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for current := -2; current <= total+2; current++ {
			strip := PageStrip(current, total, 7)

			if total == 0 {
				assert.Nil(t, strip)
				continue
			}

			pages := stripPages(strip)

			// Strictly increasing, no duplicates.
			for i := 1; i < len(pages); i++ {
				assert.Greater(t, pages[i], pages[i-1],
					"current=%d total=%d", current, total)
			}

			// Current page always present (after clamping).
			want := current
			if want < 1 {
				want = 1
			}
			if want > total {
				want = total
			}
			assert.Contains(t, pages, want, "current=%d total=%d", current, total)
			assert.Contains(t, pages, 1)
			assert.Contains(t, pages, total)
		}
	}
}

func TestPagerGoToPage(t *testing.T) {
	var fired []int
	pager := NewPager(10, func(page int) { fired = append(fired, page) })
	pager.SetTotal(45) // 5 pages

	pager.GoToPage(3)
	require.Equal(t, []int{3}, fired)
	assert.Equal(t, 3, pager.Page())

	// No-ops: same page, out of range, disabled.
	pager.GoToPage(3)
	pager.GoToPage(0)
	pager.GoToPage(6)
	assert.Equal(t, []int{3}, fired)

	pager.SetDisabled(true)
	pager.GoToPage(2)
	assert.Equal(t, []int{3}, fired)
	assert.Equal(t, 3, pager.Page())

	pager.SetDisabled(false)
	pager.Next()
	pager.Prev()
	assert.Equal(t, []int{3, 4, 3}, fired)
}

func TestPagerClampsOnShrinkingTotal(t *testing.T) {
	pager := NewPager(5, nil)
	pager.SetTotal(50)
	pager.GoToPage(10)
	require.Equal(t, 10, pager.Page())

	// Filter shrank the set: page clamps without firing the callback.
	pager.SetTotal(12)
	assert.Equal(t, 3, pager.Page())

	pager.SetTotal(0)
	assert.Equal(t, 1, pager.Page())
}

func TestPagerSetPageSizeReclamps(t *testing.T) {
	pager := NewPager(5, nil)
	pager.SetTotal(10)
	pager.GoToPage(2)

	pager.SetPageSize(20)
	assert.Equal(t, 1, pager.Page())
	assert.Equal(t, 1, pager.TotalPages())
}
