package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/collection"
	"github.com/voltride/voltdesk/internal/logger"
	"github.com/voltride/voltdesk/internal/mutation"
	"github.com/voltride/voltdesk/internal/tui/widgets"
)

var stationStatusCycle = []string{collection.FilterAll, api.StationActive, api.StationInactive, api.StationMaintenance}

// StationView lists the rental stations and triggers per-station fleet syncs.
type StationView struct {
	*BaseComponent
	app         *App
	table       *widgets.Table
	searchInput *tview.InputField
	footer      *tview.TextView
	layout      *tview.Flex
	bindings    *KeyBindings

	mu        sync.RWMutex
	stations  []api.Station
	d         collection.Directives
	schema    collection.Schema[api.Station]
	pager     *collection.Pager
	debouncer *collection.Debouncer
	orch      *mutation.Orchestrator
	gate      *mutation.Gate
	fetchGen  int
	stopped   bool
}

func NewStationView(app *App) *StationView {
	v := &StationView{
		BaseComponent: NewBaseComponent("Stations"),
		app:           app,
		d:             collection.DefaultDirectives(),
		schema:        api.StationSchema(),
		gate:          mutation.NewGate(),
		bindings:      NewKeyBindings(),
	}

	v.table = widgets.NewTable()
	v.table.SetHeaders([]string{"ID", "Name", "District", "Status", "Capacity", "Available"})
	v.table.SetBorder(true).SetTitle(" Stations ")
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

	v.pager = collection.NewPager(v.d.PageSize, func(page int) {
		v.render()
	})

	v.debouncer = collection.NewDebouncer(searchDebounce, func(value string) {
		v.app.QueueUpdateDraw(func() {
			v.mu.Lock()
			v.d.Search = value
			v.mu.Unlock()
			v.pager.GoToPage(1)
			v.render()
		})
	})

	v.orch = mutation.New(mutation.Config{
		AutoDismiss: 4 * time.Second,
		OnChange: func(snap mutation.Snapshot) {
			go v.app.QueueUpdateDraw(v.render)
		},
		Refresh: func() {
			go v.fetch(false)
		},
	})

	v.setupBindings()
	v.setupActions()

	return v
}

func (v *StationView) setupActions() {
	v.actions.Add(tcell.KeyCtrlR, KeyAction{
		Description: "Refresh",
		Action: func(evt *tcell.EventKey) *tcell.EventKey {
			go v.fetch(false)
			return nil
		},
		Visible: true,
	})

	v.actions.Add(tcell.KeyEnter, KeyAction{
		Description: "Sync fleet",
		Action: func(evt *tcell.EventKey) *tcell.EventKey {
			v.syncSelected()
			return nil
		},
		Visible: true,
	})
}

func (v *StationView) setupBindings() {
	normal := []ViewMode{ModeNormal}

	v.bindings.RegisterKey('/', "Search", normal, func() bool {
		v.enterSearch()
		return true
	})
	v.bindings.RegisterKey('f', "Cycle status filter", normal, func() bool {
		v.mu.Lock()
		v.d.Status = cycleValue(stationStatusCycle, v.d.Status)
		v.mu.Unlock()
		v.pager.GoToPage(1)
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
	v.bindings.RegisterKey('r', "Retry failed mutation", normal, func() bool {
		go func() {
			if err := v.orch.Retry(v.app.GetContext()); err != nil &&
				err != mutation.ErrNothingToRetry && err != mutation.ErrClosed {
				logger.Log.Debugf("Retry failed: %v", err)
			}
		}()
		return true
	})
	v.bindings.RegisterKey('x', "Dismiss mutation result", normal, func() bool {
		v.orch.Dismiss()
		return true
	})
}

func (v *StationView) Primitive() tview.Primitive {
	return v.layout
}

func (v *StationView) InputActive() bool {
	return v.bindings.GetMode() != ModeNormal
}

func (v *StationView) Start(ctx context.Context) {
	v.BaseComponent.Start(ctx)

	v.mu.Lock()
	v.stopped = false
	v.mu.Unlock()

	if c := v.app.Cache(); c != nil {
		if stations, ok := c.Stations(); ok {
			v.mu.Lock()
			v.stations = stations
			v.mu.Unlock()
		}
	}
	v.render()

	go v.fetch(true)
}

func (v *StationView) Stop() {
	v.BaseComponent.Stop()

	v.mu.Lock()
	v.stopped = true
	v.fetchGen++
	v.mu.Unlock()

	v.debouncer.Stop()
	v.orch.Close()
}

func (v *StationView) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	if v.InputActive() {
		return event
	}
	if v.bindings.Handle(event) {
		return nil
	}
	return event
}

func (v *StationView) fetch(initial bool) {
	v.mu.Lock()
	v.fetchGen++
	gen := v.fetchGen
	v.mu.Unlock()

	// Ignore page changes while the list is being replaced.
	v.pager.SetDisabled(true)
	defer v.pager.SetDisabled(false)

	if initial {
		v.app.QueueUpdateDraw(func() {
			v.table.SetTitle(" Stations (loading…) ")
		})
	}

	stations, err := v.app.Client().ListAllStations(v.app.GetContext(), api.ListOptions{})
	if err != nil {
		v.app.Flash(fmt.Sprintf("Failed to fetch stations: %v", err), true)
		return
	}

	if c := v.app.Cache(); c != nil {
		if err := c.SaveStations(stations); err != nil {
			logger.Log.Debugf("Failed to cache stations: %v", err)
		}
	}

	v.app.QueueUpdateDraw(func() {
		v.mu.Lock()
		if gen != v.fetchGen || v.stopped {
			v.mu.Unlock()
			return
		}
		v.stations = stations
		v.mu.Unlock()

		v.render()
	})
}

func (v *StationView) render() {
	v.mu.RLock()
	d := v.d
	stations := v.stations
	v.mu.RUnlock()

	d.Page = v.pager.Page()
	view := v.schema.Apply(stations, d)
	v.pager.SetTotal(view.TotalFiltered)
	if p := v.pager.Page(); p != d.Page {
		d.Page = p
		view = v.schema.Apply(stations, d)
	}

	v.table.ClearRows()
	for _, st := range view.Page {
		v.table.AddRow([]string{
			st.ID,
			st.Name,
			st.District,
			v.app.styles.FormatStatus(st.Status),
			fmt.Sprintf("%d", st.Capacity),
			fmt.Sprintf("%d", st.AvailableCount),
		}, st)
	}

	v.table.SetTitle(fmt.Sprintf(" Stations (%d) [gray]status: %s[-] ", view.TotalFiltered, countsLabel(d.Status, view.StatusCounts)))

	footer := " " + pageStripText(d.Page, view.TotalPages, 7)
	snap := v.orch.State()
	switch snap.Phase {
	case mutation.PhasePending:
		footer += "  [yellow]syncing…[-]"
	case mutation.PhaseSuccess:
		footer += "  [green]sync complete[-]"
	case mutation.PhaseError:
		footer += "  [red]" + snap.Message + "[-]"
		if !snap.Ambiguous {
			footer += " <r> retry"
		}
		footer += " <x> dismiss"
	}
	v.footer.SetText(footer)
}

func (v *StationView) enterSearch() {
	v.bindings.SetMode(ModeSearch)
	v.layout.Clear()
	v.layout.AddItem(v.searchInput, 1, 0, true).
		AddItem(v.table, 0, 1, false).
		AddItem(v.footer, 1, 0, false)
	v.app.SetFocus(v.searchInput)
}

func (v *StationView) leaveSearch() {
	v.bindings.SetMode(ModeNormal)
	v.layout.Clear()
	v.layout.AddItem(v.table, 0, 1, true).
		AddItem(v.footer, 1, 0, false)
	v.app.SetFocus(v.table)
}

func (v *StationView) changePage(delta int) {
	v.pager.GoToPage(v.pager.Page() + delta)
}

// syncSelected triggers a fleet reconciliation for the highlighted station.
// The gate rejects a second sync for the same station while one is running.
func (v *StationView) syncSelected() {
	ref := v.table.SelectedReference()
	st, ok := ref.(api.Station)
	if !ok {
		v.app.Flash("No station selected", true)
		return
	}

	go func() {
		err := v.orch.Invoke(v.app.GetContext(), func(ctx context.Context) error {
			return v.gate.Do(st.ID, func() error {
				_, err := v.app.Client().SyncStation(ctx, st.ID)
				return err
			})
		})
		if err == mutation.ErrBusy {
			v.app.Flash("A sync is already in progress", true)
		}
	}()
}
