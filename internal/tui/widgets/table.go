// Package widgets holds the reusable tview primitives shared by the views.
package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Table is a list table with a fixed header row, row references, and a sort
// indicator on the active column.
type Table struct {
	*tview.Table
	headers []string
}

func NewTable() *Table {
	table := &Table{
		Table: tview.NewTable(),
	}

	table.SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(tview.Borders.Vertical)

	return table
}

// SetHeaders sets the header row.
func (t *Table) SetHeaders(headers []string) *Table {
	t.headers = headers
	for col, header := range headers {
		cell := tview.NewTableCell(header).
			SetTextColor(tcell.ColorBlack).
			SetBackgroundColor(tcell.ColorDarkCyan).
			SetAlign(tview.AlignLeft).
			SetSelectable(false).
			SetExpansion(1)
		t.SetCell(0, col, cell)
	}
	return t
}

// AddRow appends a data row carrying a reference to its record.
func (t *Table) AddRow(cells []string, reference interface{}) {
	row := t.GetRowCount()
	for col, cellText := range cells {
		cell := tview.NewTableCell(cellText).
			SetTextColor(tcell.ColorWhite).
			SetBackgroundColor(tcell.ColorBlack).
			SetAlign(tview.AlignLeft).
			SetReference(reference).
			SetExpansion(1)
		t.SetCell(row, col, cell)
	}
}

// ClearRows removes every row except the header.
func (t *Table) ClearRows() {
	rowCount := t.GetRowCount()
	for row := rowCount - 1; row > 0; row-- {
		t.RemoveRow(row)
	}
}

// SelectedReference returns the record reference of the selected row, or nil.
func (t *Table) SelectedReference() interface{} {
	row, _ := t.GetSelection()
	if row <= 0 || row >= t.GetRowCount() {
		return nil
	}
	cell := t.GetCell(row, 0)
	if cell == nil {
		return nil
	}
	return cell.GetReference()
}

// MarkSortColumn annotates the header of the active sort column.
func (t *Table) MarkSortColumn(field string, fieldByHeader map[string]string, descending bool) {
	indicator := " ▲"
	if descending {
		indicator = " ▼"
	}

	for col, header := range t.headers {
		label := header
		if fieldByHeader[header] == field && field != "" {
			label += indicator
		}
		if cell := t.GetCell(0, col); cell != nil {
			cell.SetText(label)
		}
	}
}
