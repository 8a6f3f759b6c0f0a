package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/collection"
)

func TestPageStripTextHighlightsCurrentPage(t *testing.T) {
	assert.Equal(t, "1 … 4 [aqua::b]5[-::-] 6 … 20", pageStripText(5, 20, 7))
	assert.Equal(t, "[aqua::b]1[-::-] 2 3", pageStripText(1, 3, 7))
	assert.Equal(t, "", pageStripText(1, 0, 7))
}

func TestCountsLabel(t *testing.T) {
	counts := map[string]int{"available": 7, "rented": 2, "maintenance": 1}

	assert.Equal(t, "all (10)", countsLabel(collection.FilterAll, counts))
	assert.Equal(t, "rented (2)", countsLabel("rented", counts))
	assert.Equal(t, "charging (0)", countsLabel("charging", counts))
}

func TestCycleValue(t *testing.T) {
	cycle := []string{"all", "active", "inactive"}

	assert.Equal(t, "active", cycleValue(cycle, "all"))
	assert.Equal(t, "inactive", cycleValue(cycle, "active"))
	assert.Equal(t, "all", cycleValue(cycle, "inactive"))
	// Unknown values restart the cycle.
	assert.Equal(t, "all", cycleValue(cycle, "bogus"))
}

func TestFormatBatteryThresholds(t *testing.T) {
	assert.Equal(t, "[red]5%[-]", formatBattery(5))
	assert.Equal(t, "[yellow]20%[-]", formatBattery(20))
	assert.Equal(t, "[yellow]49%[-]", formatBattery(49))
	assert.Equal(t, "[green]50%[-]", formatBattery(50))
}

func TestSelectionMark(t *testing.T) {
	assert.Equal(t, "[green::b]◉[-::-]", selectionMark(true))
	assert.Equal(t, "○", selectionMark(false))
}

func TestFormatDong(t *testing.T) {
	assert.Equal(t, "0 ₫", formatDong(0))
	assert.Equal(t, "950 ₫", formatDong(950))
	assert.Equal(t, "1.250.000 ₫", formatDong(1250000))
	assert.Equal(t, "-45.000 ₫", formatDong(-45000))
}

func TestLowAvailabilitySortsByAvailableCount(t *testing.T) {
	stations := []api.Station{
		{ID: "st-1", Name: "Trạm Quận 1", Capacity: 20, AvailableCount: 3},
		{ID: "st-2", Name: "Trạm Quận 7", Capacity: 20, AvailableCount: 10},
		{ID: "st-3", Name: "Trạm Thủ Đức", Capacity: 10, AvailableCount: 1},
		{ID: "st-4", Name: "Trạm Bình Thạnh", Capacity: 0, AvailableCount: 0},
	}

	low := lowAvailability(stations)

	require.Len(t, low, 2)
	assert.Equal(t, "st-3", low[0].ID)
	assert.Equal(t, "st-1", low[1].ID)
}

func TestLabelOrAll(t *testing.T) {
	assert.Equal(t, "all", labelOrAll(""))
	assert.Equal(t, "manager", labelOrAll("manager"))
}
