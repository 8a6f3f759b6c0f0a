package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// HelpView shows the keyboard shortcuts.
type HelpView struct {
	*BaseComponent
	text *tview.TextView
}

func NewHelpView(app *App) *HelpView {
	v := &HelpView{
		BaseComponent: NewBaseComponent("Help"),
	}

	v.text = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	v.text.SetBorder(true).SetTitle(" Help ")
	v.text.SetBackgroundColor(app.styles.BgColor)
	v.text.SetText(helpText)

	return v
}

func (v *HelpView) Primitive() tview.Primitive {
	return v.text
}

func (v *HelpView) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	return event
}

const helpText = `
  [aqua::b]voltdesk[-::-]

  [::b]Global[-:-:-]
    1          Stations
    2          Vehicles
    3          Staff
    4          Reports
    5          Dashboard
    ?          This help
    Esc        Back
    Ctrl+R     Refresh current view
    Ctrl+C     Quit

  [::b]List views[-:-:-]
    /          Search (Enter applies, Esc clears)
    f          Cycle status filter
    t          Cycle kind or role filter
    s          Cycle sort field
    o          Toggle sort order
    [          Previous page
    ]          Next page

  [::b]Vehicles[-:-:-]
    Space      Toggle selection on highlighted vehicle
    a          Select or deselect every vehicle on the page
    b          Change status of selected vehicles
    Enter      Assign highlighted vehicle to a station

  [::b]Stations[-:-:-]
    Enter      Sync station fleet

  [::b]Staff[-:-:-]
    c          Create staff account
    d          Delete highlighted staff account

  [::b]Mutations[-:-:-]
    r          Retry a failed mutation
    x          Dismiss the mutation result
`
