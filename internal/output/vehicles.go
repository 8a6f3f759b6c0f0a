package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/collection"
)

// DisplayVehicles renders one page of the vehicle collection.
//
// Supported formats:
//   - "json": the page records as indented JSON
//   - "text": one block per vehicle plus status breakdown
//   - "table" (default): a table plus a pagination footer
func DisplayVehicles(view collection.View[api.Vehicle], d collection.Directives, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return displayJSON(view.Page)
	case FormatText:
		return displayVehiclesText(view, d)
	default:
		return displayVehiclesTable(view, d)
	}
}

func displayVehiclesTable(view collection.View[api.Vehicle], d collection.Directives) error {
	if view.TotalFiltered == 0 {
		fmt.Println("No vehicles found")

		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Plate", "Model", "Kind", "Status", "Battery", "Odometer", "Station"})

	for _, v := range view.Page {
		t.AppendRow(table.Row{
			v.Plate,
			truncate(v.Model, 24),
			v.Kind,
			colorStatus(v.Status),
			colorBattery(v.BatteryLevel),
			fmt.Sprintf("%.0f km", v.OdometerKm),
			truncate(v.StationName, 26),
		})
	}

	t.Render()
	printStatusBreakdown(view.StatusCounts)
	pageFooter(d.Page, view.TotalPages, view.TotalFiltered, "vehicles")

	return nil
}

func displayVehiclesText(view collection.View[api.Vehicle], d collection.Directives) error {
	if view.TotalFiltered == 0 {
		fmt.Println("No vehicles found")

		return nil
	}

	for _, v := range view.Page {
		fmt.Printf("🛵 %s %s (%s)\n", v.Plate, v.Model, v.Kind)
		fmt.Printf("  Status:    %s\n", colorStatus(v.Status))
		fmt.Printf("  Battery:   %s\n", colorBattery(v.BatteryLevel))
		fmt.Printf("  Odometer:  %.1f km\n", v.OdometerKm)

		if v.StationName != "" {
			fmt.Printf("  Station:   %s\n", v.StationName)
		}

		fmt.Println()
	}

	printStatusBreakdown(view.StatusCounts)
	pageFooter(d.Page, view.TotalPages, view.TotalFiltered, "vehicles")

	return nil
}

// printStatusBreakdown prints fleet-wide status counts. The counts cover the
// whole collection, not just the filtered page, so operators always see the
// full fleet shape.
func printStatusBreakdown(counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	statuses := make([]string, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	parts := make([]string, 0, len(statuses))
	for _, status := range statuses {
		parts = append(parts, fmt.Sprintf("%s %d", colorStatus(status), counts[status]))
	}

	fmt.Printf("Fleet: %s\n", strings.Join(parts, ", "))
}

// DisplayVehicle renders a single vehicle.
func DisplayVehicle(v *api.Vehicle, format string) error {
	if v == nil {
		fmt.Println("Vehicle not found")

		return nil
	}

	switch strings.ToLower(format) {
	case FormatJSON:
		return displayJSON(v)
	default:
		fmt.Printf("🛵 %s %s (%s)\n", v.Plate, v.Model, v.ID)
		fmt.Printf("  Kind:      %s\n", v.Kind)
		fmt.Printf("  Status:    %s\n", colorStatus(v.Status))
		fmt.Printf("  Battery:   %s\n", colorBattery(v.BatteryLevel))
		fmt.Printf("  Odometer:  %.1f km\n", v.OdometerKm)

		if v.StationName != "" {
			fmt.Printf("  Station:   %s (%s)\n", v.StationName, v.StationID)
		}

		return nil
	}
}
