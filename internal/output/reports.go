package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/collection"
)

// DisplayReports renders one page of the monthly report collection.
func DisplayReports(view collection.View[api.Report], d collection.Directives, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return displayJSON(view.Page)
	case FormatText:
		return displayReportsText(view, d)
	default:
		return displayReportsTable(view, d)
	}
}

func displayReportsTable(view collection.View[api.Report], d collection.Directives) error {
	if view.TotalFiltered == 0 {
		fmt.Println("No reports found")

		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Period", "Station", "Rentals", "Revenue", "Utilization"})

	for _, r := range view.Page {
		t.AppendRow(table.Row{
			r.Period,
			truncate(r.StationName, 30),
			r.Rentals,
			formatVND(r.RevenueVND),
			formatUtilization(r.UtilizationPct),
		})
	}

	t.Render()
	pageFooter(d.Page, view.TotalPages, view.TotalFiltered, "reports")

	return nil
}

func displayReportsText(view collection.View[api.Report], d collection.Directives) error {
	if view.TotalFiltered == 0 {
		fmt.Println("No reports found")

		return nil
	}

	for _, r := range view.Page {
		fmt.Printf("📊 %s - %s\n", r.Period, r.StationName)
		fmt.Printf("  Rentals:      %d\n", r.Rentals)
		fmt.Printf("  Revenue:      %s\n", formatVND(r.RevenueVND))
		fmt.Printf("  Utilization:  %s\n", formatUtilization(r.UtilizationPct))
		fmt.Println()
	}

	pageFooter(d.Page, view.TotalPages, view.TotalFiltered, "reports")

	return nil
}

func formatUtilization(pct float64) string {
	label := fmt.Sprintf("%.1f%%", pct)

	switch {
	case pct >= 75:
		return text.Colors{text.Bold, text.FgGreen}.Sprint(label)
	case pct >= 40:
		return label
	default:
		return text.Colors{text.Bold, text.FgYellow}.Sprint(label)
	}
}

// DisplaySummary renders the operations dashboard aggregates.
func DisplaySummary(summary *api.Summary, format string) error {
	if summary == nil {
		fmt.Println("No summary available")

		return nil
	}

	if strings.ToLower(format) == FormatJSON {
		return displayJSON(summary)
	}

	fmt.Println("VoltRide Operations")
	fmt.Printf("  Stations:        %d\n", summary.Stations)
	fmt.Printf("  Vehicles:        %d\n", summary.Vehicles)
	fmt.Printf("  Staff:           %d\n", summary.Staff)
	fmt.Printf("  Active rentals:  %d\n", summary.ActiveRentals)
	fmt.Printf("  Revenue (MTD):   %s\n", formatVND(summary.RevenueMTDVND))

	if len(summary.VehicleStatus) > 0 {
		fmt.Println("  Fleet status:")

		for _, status := range sortedKeys(summary.VehicleStatus) {
			fmt.Printf("    %-14s %d\n", status, summary.VehicleStatus[status])
		}
	}

	if len(summary.VehiclesByKind) > 0 {
		fmt.Println("  Fleet by kind:")

		for _, kind := range sortedKeys(summary.VehiclesByKind) {
			fmt.Printf("    %-14s %d\n", kind, summary.VehiclesByKind[kind])
		}
	}

	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
