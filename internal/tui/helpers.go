package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/voltride/voltdesk/internal/collection"
)

// pageStripText renders a page strip like "1 … 4 [aqua]5[-] 6 … 20" for the
// view footer. The current page is highlighted.
func pageStripText(current, totalPages, maxVisible int) string {
	items := collection.PageStrip(current, totalPages, maxVisible)
	if len(items) == 0 {
		return ""
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		switch {
		case item.Ellipsis:
			parts = append(parts, "…")
		case item.Page == current:
			parts = append(parts, "[aqua::b]"+strconv.Itoa(item.Page)+"[-::-]")
		default:
			parts = append(parts, strconv.Itoa(item.Page))
		}
	}

	return strings.Join(parts, " ")
}

// formatBattery colors a battery percentage for table cells.
func formatBattery(level int) string {
	switch {
	case level < 20:
		return fmt.Sprintf("[red]%d%%[-]", level)
	case level < 50:
		return fmt.Sprintf("[yellow]%d%%[-]", level)
	default:
		return fmt.Sprintf("[green]%d%%[-]", level)
	}
}

// selectionMark returns the checkbox cell for a row.
func selectionMark(selected bool) string {
	if selected {
		return "[green::b]◉[-::-]"
	}
	return "○"
}

// countsLabel renders "status (n)" labels like "available (10)" for the
// filter bar. Counts cover the unfiltered collection.
func countsLabel(value string, counts map[string]int) string {
	if value == collection.FilterAll {
		total := 0
		for _, n := range counts {
			total += n
		}
		return fmt.Sprintf("all (%d)", total)
	}

	return fmt.Sprintf("%s (%d)", value, counts[value])
}
