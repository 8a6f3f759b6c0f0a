package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/collection"
)

// DisplayStations renders one page of the station collection.
//
// Supported formats:
//   - "json": the page records as indented JSON
//   - "text": one block per station
//   - "table" (default): a table plus a pagination footer
func DisplayStations(view collection.View[api.Station], d collection.Directives, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return displayJSON(view.Page)
	case FormatText:
		return displayStationsText(view, d)
	default:
		return displayStationsTable(view, d)
	}
}

func displayStationsTable(view collection.View[api.Station], d collection.Directives) error {
	if view.TotalFiltered == 0 {
		fmt.Println("No stations found")

		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Name", "District", "Status", "Capacity", "Available"})

	for _, st := range view.Page {
		t.AppendRow(table.Row{
			st.ID,
			truncate(st.Name, 32),
			st.District,
			colorStatus(st.Status),
			st.Capacity,
			fmt.Sprintf("%d/%d", st.AvailableCount, st.Capacity),
		})
	}

	t.Render()
	pageFooter(d.Page, view.TotalPages, view.TotalFiltered, "stations")

	return nil
}

func displayStationsText(view collection.View[api.Station], d collection.Directives) error {
	if view.TotalFiltered == 0 {
		fmt.Println("No stations found")

		return nil
	}

	for _, st := range view.Page {
		fmt.Printf("⚡ %s (%s)\n", st.Name, st.ID)
		fmt.Printf("  Address:   %s, %s\n", st.Address, st.District)
		fmt.Printf("  Status:    %s\n", colorStatus(st.Status))
		fmt.Printf("  Capacity:  %d (%d available)\n", st.Capacity, st.AvailableCount)

		if !st.UpdatedAt.IsZero() {
			fmt.Printf("  Updated:   %s\n", st.UpdatedAt.Format(time.RFC3339))
		}

		fmt.Println()
	}

	pageFooter(d.Page, view.TotalPages, view.TotalFiltered, "stations")

	return nil
}

// DisplayStation renders a single station.
func DisplayStation(st *api.Station, format string) error {
	if st == nil {
		fmt.Println("Station not found")

		return nil
	}

	switch strings.ToLower(format) {
	case FormatJSON:
		return displayJSON(st)
	case FormatTable:
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ID", "Name", "District", "Status", "Capacity", "Available"})
		t.AppendRow(table.Row{
			st.ID,
			st.Name,
			st.District,
			colorStatus(st.Status),
			st.Capacity,
			st.AvailableCount,
		})
		t.Render()

		return nil
	default:
		fmt.Printf("⚡ %s (%s)\n", st.Name, st.ID)
		fmt.Printf("  Address:    %s, %s\n", st.Address, st.District)
		fmt.Printf("  Status:     %s\n", colorStatus(st.Status))
		fmt.Printf("  Capacity:   %d (%d available)\n", st.Capacity, st.AvailableCount)
		fmt.Printf("  Location:   %.6f, %.6f\n", st.Latitude, st.Longitude)

		if !st.UpdatedAt.IsZero() {
			fmt.Printf("  Updated:    %s\n", st.UpdatedAt.Format(time.RFC3339))
		}

		return nil
	}
}

// DisplaySyncResult renders the outcome of a station fleet sync.
func DisplaySyncResult(result *api.SyncResult, format string) error {
	if result == nil {
		return nil
	}

	if strings.ToLower(format) == FormatJSON {
		return displayJSON(result)
	}

	fmt.Printf("Synced station %s: %d added, %d removed, %d updated\n",
		result.StationID, result.Added, result.Removed, result.Updated)

	return nil
}
