package tui

import (
	"context"
	"fmt"
	"strings"
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

// searchDebounce is how long typing must pause before the search filter
// re-runs the pipeline.
const searchDebounce = 300 * time.Millisecond

var (
	vehicleStatusCycle = []string{collection.FilterAll, api.VehicleAvailable, api.VehicleRented, api.VehicleMaintenance, api.VehicleCharging}
	vehicleKindCycle   = []string{collection.FilterAll, api.KindScooter, api.KindEBike, api.KindCar}
	vehicleSortCycle   = []string{"", "plate", "model", "battery", "odometer", "station"}
)

// vehicleHeaders maps table headers to sort fields for the sort indicator.
var vehicleHeaders = map[string]string{
	"Plate":    "plate",
	"Model":    "model",
	"Battery":  "battery",
	"Odometer": "odometer",
	"Station":  "station",
}

// VehicleView is the main fleet view: a filtered, sorted, paginated vehicle
// table with bulk selection and status mutations.
type VehicleView struct {
	*BaseComponent
	app         *App
	table       *widgets.Table
	searchInput *tview.InputField
	filterBar   *tview.TextView
	footer      *tview.TextView
	layout      *tview.Flex
	bindings    *KeyBindings

	mu        sync.RWMutex
	vehicles  []api.Vehicle
	d         collection.Directives
	schema    collection.Schema[api.Vehicle]
	selection *collection.Selection
	debouncer *collection.Debouncer
	orch      *mutation.Orchestrator
	gate      *mutation.Gate
	fetchGen  int
	stopped   bool
}

func NewVehicleView(app *App) *VehicleView {
	v := &VehicleView{
		BaseComponent: NewBaseComponent("Vehicles"),
		app:           app,
		d:             collection.DefaultDirectives(),
		schema:        api.VehicleSchema(),
		selection:     collection.NewSelection(),
		gate:          mutation.NewGate(),
		bindings:      NewKeyBindings(),
	}

	v.table = widgets.NewTable()
	v.table.SetHeaders([]string{"", "Plate", "Model", "Kind", "Status", "Battery", "Odometer", "Station"})
	v.table.SetBorder(true).SetTitle(" Vehicles ")
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

	v.filterBar = tview.NewTextView().SetDynamicColors(true)
	v.footer = tview.NewTextView().SetDynamicColors(true)

	v.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.filterBar, 1, 0, false).
		AddItem(v.table, 0, 1, true).
		AddItem(v.footer, 1, 0, false)

	// Debounced search: the timer fires off the UI goroutine, so the pipeline
	// re-runs inside QueueUpdateDraw.
	v.debouncer = collection.NewDebouncer(searchDebounce, func(value string) {
		v.app.QueueUpdateDraw(func() {
			v.mu.Lock()
			v.d.Search = value
			v.d.Page = 1
			v.mu.Unlock()
			v.render()
		})
	})

	v.orch = mutation.New(mutation.Config{
		AutoDismiss: 4 * time.Second,
		// OnChange fires under the orchestrator's lock and render reads the
		// orchestrator state, so the redraw is queued from a fresh goroutine.
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

func (v *VehicleView) setupActions() {
	v.actions.Add(tcell.KeyCtrlR, KeyAction{
		Description: "Refresh",
		Action: func(evt *tcell.EventKey) *tcell.EventKey {
			go v.fetch(false)
			return nil
		},
		Visible: true,
	})

	v.actions.Add(tcell.KeyEnter, KeyAction{
		Description: "Assign",
		Action: func(evt *tcell.EventKey) *tcell.EventKey {
			v.promptAssign()
			return nil
		},
		Visible: true,
	})
}

func (v *VehicleView) setupBindings() {
	normal := []ViewMode{ModeNormal}

	v.bindings.RegisterKey('/', "Search", normal, func() bool {
		v.enterSearch()
		return true
	})
	v.bindings.RegisterKey('f', "Cycle status filter", normal, func() bool {
		v.cycleStatus()
		return true
	})
	v.bindings.RegisterKey('t', "Cycle type filter", normal, func() bool {
		v.cycleKind()
		return true
	})
	v.bindings.RegisterKey('s', "Cycle sort field", normal, func() bool {
		v.cycleSort()
		return true
	})
	v.bindings.RegisterKey('o', "Toggle sort order", normal, func() bool {
		v.toggleOrder()
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
	v.bindings.RegisterKey(' ', "Toggle selection", normal, func() bool {
		v.toggleSelected()
		return true
	})
	v.bindings.RegisterKey('a', "Select/deselect page", normal, func() bool {
		v.toggleSelectAll()
		return true
	})
	v.bindings.RegisterKey('b', "Bulk status change", normal, func() bool {
		v.promptBulkStatus()
		return true
	})
	v.bindings.RegisterKey('r', "Retry failed mutation", normal, func() bool {
		v.retry()
		return true
	})
	v.bindings.RegisterKey('x', "Dismiss mutation result", normal, func() bool {
		v.orch.Dismiss()
		return true
	})
}

func (v *VehicleView) Primitive() tview.Primitive {
	return v.layout
}

// InputActive reports whether the search field or a modal owns the keyboard.
func (v *VehicleView) InputActive() bool {
	return v.bindings.GetMode() != ModeNormal
}

func (v *VehicleView) Start(ctx context.Context) {
	v.BaseComponent.Start(ctx)

	v.mu.Lock()
	v.stopped = false
	v.mu.Unlock()

	// Instant first paint from the snapshot cache, then a fresh fetch.
	if c := v.app.Cache(); c != nil {
		if vehicles, ok := c.Vehicles(); ok {
			v.mu.Lock()
			v.vehicles = vehicles
			v.mu.Unlock()
		}
	}
	v.render()

	go v.fetch(true)
}

func (v *VehicleView) Stop() {
	v.BaseComponent.Stop()

	v.mu.Lock()
	v.stopped = true
	v.fetchGen++ // in-flight fetches land stale
	v.mu.Unlock()

	v.debouncer.Stop()
	v.orch.Close()
}

func (v *VehicleView) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	if v.InputActive() {
		return event
	}

	if v.bindings.Handle(event) {
		return nil
	}

	return event
}

// fetch reloads the collection from the backend. Responses from a superseded
// fetch are discarded by generation number, so a slow first fetch can never
// overwrite a newer one.
func (v *VehicleView) fetch(initial bool) {
	v.mu.Lock()
	v.fetchGen++
	gen := v.fetchGen
	v.mu.Unlock()

	if initial {
		v.app.QueueUpdateDraw(func() {
			v.table.SetTitle(" Vehicles (loading…) ")
		})
	}

	vehicles, err := v.app.Client().ListAllVehicles(v.app.GetContext(), api.ListOptions{})
	if err != nil {
		v.app.Flash(fmt.Sprintf("Failed to fetch vehicles: %v", err), true)
		return
	}

	if c := v.app.Cache(); c != nil {
		if err := c.SaveVehicles(vehicles); err != nil {
			logger.Log.Debugf("Failed to cache vehicles: %v", err)
		}
	}

	v.app.QueueUpdateDraw(func() {
		v.mu.Lock()
		if gen != v.fetchGen || v.stopped {
			v.mu.Unlock()
			return
		}
		v.vehicles = vehicles

		ids := make([]string, len(vehicles))
		for i, vcl := range vehicles {
			ids[i] = vcl.ID
		}
		v.mu.Unlock()

		// Selected rows that no longer exist drop out of the selection.
		v.selection.Prune(ids)

		v.render()
	})
}

// render runs the pipeline and repaints. Must be called on the UI goroutine.
func (v *VehicleView) render() {
	v.mu.Lock()
	view := v.schema.Apply(v.vehicles, v.d)
	if clamped := collection.ClampPage(v.d.Page, view.TotalFiltered, v.d.PageSize); clamped != v.d.Page {
		v.d.Page = clamped
		view = v.schema.Apply(v.vehicles, v.d)
	}
	d := v.d
	v.mu.Unlock()

	v.table.ClearRows()
	for _, vcl := range view.Page {
		v.table.AddRow([]string{
			selectionMark(v.selection.IsSelected(vcl.ID)),
			vcl.Plate,
			vcl.Model,
			vcl.Kind,
			v.app.styles.FormatStatus(vcl.Status),
			formatBattery(vcl.BatteryLevel),
			fmt.Sprintf("%.0f km", vcl.OdometerKm),
			vcl.StationName,
		}, vcl)
	}

	v.table.MarkSortColumn(d.SortField, vehicleHeaders, d.SortDir == collection.Desc)
	v.table.SetTitle(fmt.Sprintf(" Vehicles (%d) ", view.TotalFiltered))

	v.filterBar.SetText(fmt.Sprintf("[gray]status:[-] %s  [gray]type:[-] %s  [gray]search:[-] %q  [gray]sort:[-] %s",
		countsLabel(d.Status, view.StatusCounts),
		countsLabel(d.Kind, view.KindCounts),
		d.Search,
		sortLabel(d)))

	v.footer.SetText(v.footerText(view, d))
}

func sortLabel(d collection.Directives) string {
	if d.SortField == "" {
		return "none"
	}
	return d.SortField + " " + string(d.SortDir)
}

func (v *VehicleView) footerText(view collection.View[api.Vehicle], d collection.Directives) string {
	parts := []string{pageStripText(d.Page, view.TotalPages, 7)}

	if n := v.selection.Count(); n > 0 {
		parts = append(parts, fmt.Sprintf("[green]%d selected[-]", n))
	}

	snap := v.orch.State()
	switch snap.Phase {
	case mutation.PhasePending:
		parts = append(parts, "[yellow]working…[-]")
	case mutation.PhaseSuccess:
		parts = append(parts, "[green]done[-]")
	case mutation.PhaseError:
		label := "[red]" + snap.Message + "[-] <r> retry <x> dismiss"
		if snap.Ambiguous {
			label = "[red]" + snap.Message + "[-] <x> dismiss"
		}
		parts = append(parts, label)
	}

	return " " + strings.Join(parts, "  ")
}

func (v *VehicleView) enterSearch() {
	v.bindings.SetMode(ModeSearch)
	v.layout.Clear()
	v.layout.AddItem(v.searchInput, 1, 0, true).
		AddItem(v.filterBar, 1, 0, false).
		AddItem(v.table, 0, 1, false).
		AddItem(v.footer, 1, 0, false)
	v.app.SetFocus(v.searchInput)
}

func (v *VehicleView) leaveSearch() {
	v.bindings.SetMode(ModeNormal)
	v.layout.Clear()
	v.layout.AddItem(v.filterBar, 1, 0, false).
		AddItem(v.table, 0, 1, true).
		AddItem(v.footer, 1, 0, false)
	v.app.SetFocus(v.table)
}

func cycleValue(cycle []string, current string) string {
	for i, value := range cycle {
		if value == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

func (v *VehicleView) cycleStatus() {
	v.mu.Lock()
	v.d.Status = cycleValue(vehicleStatusCycle, v.d.Status)
	v.d.Page = 1
	v.mu.Unlock()
	v.render()
}

func (v *VehicleView) cycleKind() {
	v.mu.Lock()
	v.d.Kind = cycleValue(vehicleKindCycle, v.d.Kind)
	v.d.Page = 1
	v.mu.Unlock()
	v.render()
}

func (v *VehicleView) cycleSort() {
	v.mu.Lock()
	v.d.SortField = cycleValue(vehicleSortCycle, v.d.SortField)
	v.mu.Unlock()
	v.render()
}

func (v *VehicleView) toggleOrder() {
	v.mu.Lock()
	if v.d.SortDir == collection.Asc {
		v.d.SortDir = collection.Desc
	} else {
		v.d.SortDir = collection.Asc
	}
	v.mu.Unlock()
	v.render()
}

func (v *VehicleView) changePage(delta int) {
	v.mu.Lock()
	view := v.schema.Apply(v.vehicles, v.d)
	target := collection.ClampPage(v.d.Page+delta, view.TotalFiltered, v.d.PageSize)
	changed := target != v.d.Page
	v.d.Page = target
	v.mu.Unlock()

	if changed {
		v.render()
	}
}

func (v *VehicleView) selectedVehicle() (api.Vehicle, bool) {
	ref := v.table.SelectedReference()
	vcl, ok := ref.(api.Vehicle)
	return vcl, ok
}

func (v *VehicleView) toggleSelected() {
	vcl, ok := v.selectedVehicle()
	if !ok {
		return
	}
	v.selection.Toggle(vcl.ID)
	v.render()
}

// toggleSelectAll applies select-all semantics to the visible page: if any
// visible row is unselected, select them all; otherwise deselect them all.
// Selections on other pages are kept.
func (v *VehicleView) toggleSelectAll() {
	v.mu.RLock()
	view := v.schema.Apply(v.vehicles, v.d)
	v.mu.RUnlock()

	ids := make([]string, len(view.Page))
	for i, vcl := range view.Page {
		ids[i] = vcl.ID
	}

	v.selection.SelectAll(ids)
	v.render()
}

func (v *VehicleView) retry() {
	go func() {
		if err := v.orch.Retry(v.app.GetContext()); err != nil &&
			err != mutation.ErrNothingToRetry && err != mutation.ErrClosed {
			logger.Log.Debugf("Retry failed: %v", err)
		}
	}()
}

// promptBulkStatus opens the target-status picker for the selected vehicles.
func (v *VehicleView) promptBulkStatus() {
	if v.selection.Count() == 0 {
		v.app.Flash("No vehicles selected", true)
		return
	}
	if v.orch.State().Phase == mutation.PhasePending {
		v.app.Flash("A mutation is already in progress", true)
		return
	}

	v.bindings.SetMode(ModeModal)

	list := tview.NewList().ShowSecondaryText(false)
	list.SetBorder(true).SetTitle(fmt.Sprintf(" Set status for %d vehicles ", v.selection.Count()))

	for _, status := range []string{api.VehicleAvailable, api.VehicleMaintenance, api.VehicleCharging} {
		status := status
		list.AddItem(status, "", 0, func() {
			v.closeModal()
			v.runBulkStatus(status)
		})
	}
	list.AddItem("cancel", "", 'q', func() {
		v.closeModal()
	})
	list.SetDoneFunc(func() {
		v.closeModal()
	})

	v.showModal(list, 40, 8)
}

// runBulkStatus updates every selected vehicle, serialized per record
// through the gate. One orchestrator invocation covers the whole batch.
func (v *VehicleView) runBulkStatus(status string) {
	ids := v.selection.IDs()

	go func() {
		err := v.orch.Invoke(v.app.GetContext(), func(ctx context.Context) error {
			for _, id := range ids {
				id := id
				if err := v.gate.Do(id, func() error {
					_, err := v.app.Client().UpdateVehicleStatus(ctx, id, status)
					return err
				}); err != nil {
					return fmt.Errorf("vehicle %s: %w", id, err)
				}
			}
			return nil
		})
		if err == nil {
			v.selection.Clear()
		}
	}()
}

// promptAssign opens the station assignment form for the highlighted vehicle.
func (v *VehicleView) promptAssign() {
	vcl, ok := v.selectedVehicle()
	if !ok {
		v.app.Flash("No vehicle selected", true)
		return
	}
	if v.orch.State().Phase == mutation.PhasePending {
		v.app.Flash("A mutation is already in progress", true)
		return
	}

	v.bindings.SetMode(ModeModal)

	form := tview.NewForm()
	form.SetBorder(true).SetTitle(fmt.Sprintf(" Assign %s to station ", vcl.Plate))
	form.AddInputField("Station ID", vcl.StationID, 24, nil, nil)
	form.AddButton("Assign", func() {
		stationID := strings.TrimSpace(form.GetFormItemByLabel("Station ID").(*tview.InputField).GetText())
		if stationID == "" {
			v.app.Flash("Station ID is required", true)
			return
		}
		v.closeModal()
		v.runAssign(vcl, stationID)
	})
	form.AddButton("Cancel", func() {
		v.closeModal()
	})
	form.SetCancelFunc(func() {
		v.closeModal()
	})

	v.showModal(form, 50, 9)
}

func (v *VehicleView) runAssign(vcl api.Vehicle, stationID string) {
	go func() {
		_ = v.orch.Invoke(v.app.GetContext(), func(ctx context.Context) error {
			return v.gate.Do(vcl.ID, func() error {
				_, err := v.app.Client().AssignVehicle(ctx, vcl.ID, stationID)
				return err
			})
		})
	}()
}

// showModal centers a primitive over the table.
func (v *VehicleView) showModal(p tview.Primitive, width, height int) {
	modal := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)

	v.layout.Clear()
	v.layout.AddItem(modal, 0, 1, true)
	v.app.SetFocus(p)
}

func (v *VehicleView) closeModal() {
	v.bindings.SetMode(ModeNormal)
	v.leaveSearch()
}
