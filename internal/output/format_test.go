package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/collection"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)

	return buf.String()
}

func TestDefaultFormat(t *testing.T) {
	allowed := []string{FormatTable, FormatText, FormatJSON}

	t.Setenv("VOLTDESK_OUTPUT", "")
	assert.Equal(t, FormatTable, DefaultFormat(FormatTable, allowed))

	t.Setenv("VOLTDESK_OUTPUT", "JSON")
	assert.Equal(t, FormatJSON, DefaultFormat(FormatTable, allowed))

	t.Setenv("VOLTDESK_OUTPUT", "yaml")
	assert.Equal(t, FormatTable, DefaultFormat(FormatTable, allowed))
}

func TestTruncateMeasuresDisplayWidth(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Trạm Quậ…", truncate("Trạm Quận 7 Hồ Chí Minh", 9))
	assert.Equal(t, "a", truncate("abc", 1))
}

func TestFormatVND(t *testing.T) {
	assert.Equal(t, "0 ₫", formatVND(0))
	assert.Equal(t, "950 ₫", formatVND(950))
	assert.Equal(t, "1.250.000 ₫", formatVND(1250000))
	assert.Equal(t, "-45.000 ₫", formatVND(-45000))
}

func TestDisplayVehiclesJSONEmitsPageOnly(t *testing.T) {
	view := collection.View[api.Vehicle]{
		Page:          []api.Vehicle{{ID: "v-01", Plate: "59X1-123.45"}},
		TotalFiltered: 8,
		TotalPages:    4,
	}

	out := captureStdout(t, func() {
		require.NoError(t, DisplayVehicles(view, collection.DefaultDirectives(), FormatJSON))
	})

	assert.Contains(t, out, "59X1-123.45")
	assert.NotContains(t, out, "Page")
}

func TestDisplayStationsTableHasFooter(t *testing.T) {
	view := collection.View[api.Station]{
		Page: []api.Station{
			{ID: "st-01", Name: "Trạm Quận 1", District: "Quận 1", Status: api.StationActive, Capacity: 40, AvailableCount: 12},
		},
		TotalFiltered: 23,
		TotalPages:    3,
	}
	d := collection.DefaultDirectives()
	d.Page = 2

	out := captureStdout(t, func() {
		require.NoError(t, DisplayStations(view, d, FormatTable))
	})

	assert.Contains(t, out, "Trạm Quận 1")
	assert.Contains(t, out, "Page 2/3 (23 stations)")
}

func TestDisplayVehiclesEmptyCollection(t *testing.T) {
	out := captureStdout(t, func() {
		require.NoError(t, DisplayVehicles(collection.View[api.Vehicle]{}, collection.DefaultDirectives(), FormatTable))
	})

	assert.True(t, strings.HasPrefix(out, "No vehicles found"))
}

func TestDisplaySummaryText(t *testing.T) {
	summary := &api.Summary{
		Stations:      12,
		Vehicles:      230,
		Staff:         41,
		ActiveRentals: 87,
		RevenueMTDVND: 128500000,
		VehicleStatus: map[string]int{"available": 120, "rented": 87, "maintenance": 23},
	}

	out := captureStdout(t, func() {
		require.NoError(t, DisplaySummary(summary, FormatText))
	})

	assert.Contains(t, out, "128.500.000 ₫")
	assert.Contains(t, out, "available")
}
