package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/voltride/voltdesk/internal/api"
)

// Styles holds the color scheme for the TUI.
type Styles struct {
	BgColor     tcell.Color
	FgColor     tcell.Color
	BorderColor tcell.Color

	StatusOK      tcell.Color
	StatusBusy    tcell.Color
	StatusWarning tcell.Color
	StatusError   tcell.Color

	TableHeaderBg   tcell.Color
	TableHeaderFg   tcell.Color
	TableSelectedBg tcell.Color
	TableSelectedFg tcell.Color

	TitleFg tcell.Color
	TitleBg tcell.Color

	CrumbFg tcell.Color
	CrumbBg tcell.Color
}

// DefaultStyles returns the default dark color scheme.
func DefaultStyles() *Styles {
	return &Styles{
		BgColor:     tcell.ColorBlack,
		FgColor:     tcell.ColorWhite,
		BorderColor: tcell.ColorDarkCyan,

		StatusOK:      tcell.ColorGreen,
		StatusBusy:    tcell.ColorDodgerBlue,
		StatusWarning: tcell.ColorYellow,
		StatusError:   tcell.ColorRed,

		TableHeaderBg:   tcell.ColorDarkCyan,
		TableHeaderFg:   tcell.ColorBlack,
		TableSelectedBg: tcell.ColorDarkCyan,
		TableSelectedFg: tcell.ColorWhite,

		TitleFg: tcell.ColorAqua,
		TitleBg: tcell.ColorBlack,

		CrumbFg: tcell.ColorGray,
		CrumbBg: tcell.ColorBlack,
	}
}

// StatusColor maps a record status to its display color.
func (s *Styles) StatusColor(status string) tcell.Color {
	switch status {
	case api.StationActive, api.VehicleAvailable:
		return s.StatusOK
	case api.VehicleRented, api.VehicleCharging:
		return s.StatusBusy
	case api.StationMaintenance, api.StaffSuspended:
		return s.StatusWarning
	case api.StationInactive:
		return s.StatusError
	default:
		return s.FgColor
	}
}

// FormatStatus returns a status string wrapped in tview color tags.
func (s *Styles) FormatStatus(status string) string {
	return "[" + ColorName(s.StatusColor(status)) + "]" + status + "[-]"
}

// ColorName converts a tcell color to a tview color tag name.
func ColorName(color tcell.Color) string {
	switch color {
	case tcell.ColorGreen:
		return "green"
	case tcell.ColorRed:
		return "red"
	case tcell.ColorYellow:
		return "yellow"
	case tcell.ColorDodgerBlue:
		return "dodgerblue"
	case tcell.ColorGray:
		return "gray"
	case tcell.ColorAqua:
		return "aqua"
	case tcell.ColorDarkCyan:
		return "darkcyan"
	default:
		return "white"
	}
}
