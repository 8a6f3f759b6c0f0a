// Package output renders station, vehicle, staff, and report collections to
// stdout in table, text, and JSON formats.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
)

// Format names accepted by the --output flag.
const (
	FormatTable = "table"
	FormatText  = "text"
	FormatJSON  = "json"
)

// DefaultFormat returns the preferred output format unless VOLTDESK_OUTPUT is
// set to a supported value.
func DefaultFormat(preferred string, allowed []string) string {
	env := strings.TrimSpace(os.Getenv("VOLTDESK_OUTPUT"))
	if env == "" {
		return preferred
	}

	env = strings.ToLower(env)
	for _, option := range allowed {
		if env == option {
			return env
		}
	}

	return preferred
}

// displayJSON displays data as indented JSON.
func displayJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(data)
}

// truncate shortens a string to the given display width. Widths are measured
// in terminal cells so Vietnamese names with combining marks line up.
func truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	if maxWidth <= 1 {
		return runewidth.Truncate(s, maxWidth, "")
	}

	return runewidth.Truncate(s, maxWidth, "…")
}

// formatVND renders an amount in Vietnamese đồng with thousands separators.
func formatVND(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	value := strings.Join(groups, ".")
	if negative {
		value = "-" + value
	}

	return value + " ₫"
}

// colorStatus maps a record status to a colored label.
func colorStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "active", "available":
		return text.Colors{text.Bold, text.FgGreen}.Sprint(status)
	case "rented", "charging":
		return text.Colors{text.Bold, text.FgCyan}.Sprint(status)
	case "maintenance", "suspended":
		return text.Colors{text.Bold, text.FgYellow}.Sprint(status)
	case "inactive":
		return text.Colors{text.Bold, text.FgRed}.Sprint(status)
	default:
		return status
	}
}

// colorBattery colors a battery percentage: red below 20, yellow below 50.
func colorBattery(level int) string {
	label := fmt.Sprintf("%d%%", level)

	switch {
	case level < 20:
		return text.Colors{text.Bold, text.FgRed}.Sprint(label)
	case level < 50:
		return text.Colors{text.Bold, text.FgYellow}.Sprint(label)
	default:
		return text.FgGreen.Sprint(label)
	}
}

// pageFooter prints a "Page X/Y (N items)" line for paginated listings.
func pageFooter(page, totalPages, totalItems int, noun string) {
	if totalPages <= 1 {
		fmt.Printf("%d %s\n", totalItems, noun)

		return
	}

	fmt.Printf("Page %d/%d (%d %s)\n", page, totalPages, totalItems, noun)
}
