package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/collection"
	"github.com/voltride/voltdesk/internal/logger"
	"github.com/voltride/voltdesk/internal/tui/widgets"
)

var reportSortCycle = []string{"period", "station", "rentals", "revenue", "utilization"}

// ReportView is a read-only list of the monthly per-station reports.
type ReportView struct {
	*BaseComponent
	app         *App
	table       *widgets.Table
	searchInput *tview.InputField
	footer      *tview.TextView
	layout      *tview.Flex
	bindings    *KeyBindings

	mu        sync.RWMutex
	reports   []api.Report
	d         collection.Directives
	schema    collection.Schema[api.Report]
	debouncer *collection.Debouncer
	fetchGen  int
	stopped   bool
}

func NewReportView(app *App) *ReportView {
	v := &ReportView{
		BaseComponent: NewBaseComponent("Reports"),
		app:           app,
		d:             collection.DefaultDirectives(),
		schema:        api.ReportSchema(),
		bindings:      NewKeyBindings(),
	}
	v.d.SortField = "period"
	v.d.SortDir = collection.Desc

	v.table = widgets.NewTable()
	v.table.SetHeaders([]string{"Period", "Station", "Rentals", "Revenue (VND)", "Utilization"})
	v.table.SetBorder(true).SetTitle(" Reports ")
	v.table.SetBackgroundColor(app.styles.BgColor)
	v.table.SetSelectedStyle(tcell.StyleDefault.
		Background(app.styles.TableSelectedBg).
		Foreground(app.styles.TableSelectedFg).
		Bold(true))

	v.searchInput = tview.NewInputField().
		SetLabel("Search: ").
		SetFieldWidth(0).
		SetChangedFunc(func(text string) {
			v.debouncer.Set(text)
		}).
		SetDoneFunc(func(key tcell.Key) {
			if key == tcell.KeyEscape {
				v.searchInput.SetText("")
				v.debouncer.Set("")
			}
			v.leaveSearch()
		})

	v.footer = tview.NewTextView().SetDynamicColors(true)

	v.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 1, true).
		AddItem(v.footer, 1, 0, false)

	v.debouncer = collection.NewDebouncer(searchDebounce, func(value string) {
		v.app.QueueUpdateDraw(func() {
			v.mu.Lock()
			v.d.Search = value
			v.d.Page = 1
			v.mu.Unlock()
			v.render()
		})
	})

	v.setupBindings()
	v.setupActions()

	return v
}

func (v *ReportView) setupActions() {
	v.actions.Add(tcell.KeyCtrlR, KeyAction{
		Description: "Refresh",
		Action: func(evt *tcell.EventKey) *tcell.EventKey {
			go v.fetch(false)
			return nil
		},
		Visible: true,
	})
}

func (v *ReportView) setupBindings() {
	normal := []ViewMode{ModeNormal}

	v.bindings.RegisterKey('/', "Search", normal, func() bool {
		v.enterSearch()
		return true
	})
	v.bindings.RegisterKey('s', "Cycle sort field", normal, func() bool {
		v.mu.Lock()
		v.d.SortField = cycleValue(reportSortCycle, v.d.SortField)
		v.mu.Unlock()
		v.render()
		return true
	})
	v.bindings.RegisterKey('o', "Toggle sort order", normal, func() bool {
		v.mu.Lock()
		if v.d.SortDir == collection.Asc {
			v.d.SortDir = collection.Desc
		} else {
			v.d.SortDir = collection.Asc
		}
		v.mu.Unlock()
		v.render()
		return true
	})
	v.bindings.RegisterKey('[', "Previous page", normal, func() bool {
		v.changePage(-1)
		return true
	})
	v.bindings.RegisterKey(']', "Next page", normal, func() bool {
		v.changePage(1)
		return true
	})
}

func (v *ReportView) Primitive() tview.Primitive {
	return v.layout
}

func (v *ReportView) InputActive() bool {
	return v.bindings.GetMode() != ModeNormal
}

func (v *ReportView) Start(ctx context.Context) {
	v.BaseComponent.Start(ctx)

	v.mu.Lock()
	v.stopped = false
	v.mu.Unlock()

	if c := v.app.Cache(); c != nil {
		if reports, ok := c.Reports(); ok {
			v.mu.Lock()
			v.reports = reports
			v.mu.Unlock()
		}
	}
	v.render()

	go v.fetch(true)
}

func (v *ReportView) Stop() {
	v.BaseComponent.Stop()

	v.mu.Lock()
	v.stopped = true
	v.fetchGen++
	v.mu.Unlock()

	v.debouncer.Stop()
}

func (v *ReportView) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	if v.InputActive() {
		return event
	}
	if v.bindings.Handle(event) {
		return nil
	}
	return event
}

func (v *ReportView) fetch(initial bool) {
	v.mu.Lock()
	v.fetchGen++
	gen := v.fetchGen
	v.mu.Unlock()

	if initial {
		v.app.QueueUpdateDraw(func() {
			v.table.SetTitle(" Reports (loading…) ")
		})
	}

	reports, err := v.app.Client().ListAllReports(v.app.GetContext(), api.ReportOptions{})
	if err != nil {
		v.app.Flash(fmt.Sprintf("Failed to fetch reports: %v", err), true)
		return
	}

	if c := v.app.Cache(); c != nil {
		if err := c.SaveReports(reports); err != nil {
			logger.Log.Debugf("Failed to cache reports: %v", err)
		}
	}

	v.app.QueueUpdateDraw(func() {
		v.mu.Lock()
		if gen != v.fetchGen || v.stopped {
			v.mu.Unlock()
			return
		}
		v.reports = reports
		v.mu.Unlock()

		v.render()
	})
}

func (v *ReportView) render() {
	v.mu.Lock()
	view := v.schema.Apply(v.reports, v.d)
	if clamped := collection.ClampPage(v.d.Page, view.TotalFiltered, v.d.PageSize); clamped != v.d.Page {
		v.d.Page = clamped
		view = v.schema.Apply(v.reports, v.d)
	}
	d := v.d
	v.mu.Unlock()

	v.table.ClearRows()
	for _, r := range view.Page {
		v.table.AddRow([]string{
			r.Period,
			r.StationName,
			fmt.Sprintf("%d", r.Rentals),
			fmt.Sprintf("%d", r.RevenueVND),
			fmt.Sprintf("%.1f%%", r.UtilizationPct),
		}, r)
	}

	v.table.SetTitle(fmt.Sprintf(" Reports (%d) [gray]%s[-] ", view.TotalFiltered, sortLabel(d)))
	v.footer.SetText(" " + pageStripText(d.Page, view.TotalPages, 7))
}

func (v *ReportView) enterSearch() {
	v.bindings.SetMode(ModeSearch)
	v.layout.Clear()
	v.layout.AddItem(v.searchInput, 1, 0, true).
		AddItem(v.table, 0, 1, false).
		AddItem(v.footer, 1, 0, false)
	v.app.SetFocus(v.searchInput)
}

func (v *ReportView) leaveSearch() {
	v.bindings.SetMode(ModeNormal)
	v.layout.Clear()
	v.layout.AddItem(v.table, 0, 1, true).
		AddItem(v.footer, 1, 0, false)
	v.app.SetFocus(v.table)
}

func (v *ReportView) changePage(delta int) {
	v.mu.Lock()
	view := v.schema.Apply(v.reports, v.d)
	target := collection.ClampPage(v.d.Page+delta, view.TotalFiltered, v.d.PageSize)
	changed := target != v.d.Page
	v.d.Page = target
	v.mu.Unlock()

	if changed {
		v.render()
	}
}
