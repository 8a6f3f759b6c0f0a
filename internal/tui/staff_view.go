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

var (
	staffStatusCycle = []string{collection.FilterAll, api.StaffActive, api.StaffSuspended}
	staffRoleCycle   = []string{collection.FilterAll, api.RoleManager, api.RoleTechnician, api.RoleSupport}
)

// StaffView lists staff accounts and drives create and delete mutations.
type StaffView struct {
	*BaseComponent
	app         *App
	table       *widgets.Table
	searchInput *tview.InputField
	footer      *tview.TextView
	layout      *tview.Flex
	bindings    *KeyBindings

	mu        sync.RWMutex
	staff     []api.Staff
	d         collection.Directives
	schema    collection.Schema[api.Staff]
	debouncer *collection.Debouncer
	orch      *mutation.Orchestrator
	gate      *mutation.Gate
	fetchGen  int
	stopped   bool
}

func NewStaffView(app *App) *StaffView {
	v := &StaffView{
		BaseComponent: NewBaseComponent("Staff"),
		app:           app,
		d:             collection.DefaultDirectives(),
		schema:        api.StaffSchema(),
		gate:          mutation.NewGate(),
		bindings:      NewKeyBindings(),
	}

	v.table = widgets.NewTable()
	v.table.SetHeaders([]string{"ID", "Name", "Email", "Role", "Station", "Status"})
	v.table.SetBorder(true).SetTitle(" Staff ")
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

func (v *StaffView) setupActions() {
	v.actions.Add(tcell.KeyCtrlR, KeyAction{
		Description: "Refresh",
		Action: func(evt *tcell.EventKey) *tcell.EventKey {
			go v.fetch(false)
			return nil
		},
		Visible: true,
	})
}

func (v *StaffView) setupBindings() {
	normal := []ViewMode{ModeNormal}

	v.bindings.RegisterKey('/', "Search", normal, func() bool {
		v.enterSearch()
		return true
	})
	v.bindings.RegisterKey('f', "Cycle status filter", normal, func() bool {
		v.mu.Lock()
		v.d.Status = cycleValue(staffStatusCycle, v.d.Status)
		v.d.Page = 1
		v.mu.Unlock()
		v.render()
		return true
	})
	v.bindings.RegisterKey('t', "Cycle role filter", normal, func() bool {
		v.mu.Lock()
		v.d.Kind = cycleValue(staffRoleCycle, v.d.Kind)
		v.d.Page = 1
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
	v.bindings.RegisterKey('c', "Create staff account", normal, func() bool {
		v.promptCreate()
		return true
	})
	v.bindings.RegisterKey('d', "Delete staff account", normal, func() bool {
		v.promptDelete()
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

func (v *StaffView) Primitive() tview.Primitive {
	return v.layout
}

func (v *StaffView) InputActive() bool {
	return v.bindings.GetMode() != ModeNormal
}

func (v *StaffView) Start(ctx context.Context) {
	v.BaseComponent.Start(ctx)

	v.mu.Lock()
	v.stopped = false
	v.mu.Unlock()

	if c := v.app.Cache(); c != nil {
		if staff, ok := c.Staff(); ok {
			v.mu.Lock()
			v.staff = staff
			v.mu.Unlock()
		}
	}
	v.render()

	go v.fetch(true)
}

func (v *StaffView) Stop() {
	v.BaseComponent.Stop()

	v.mu.Lock()
	v.stopped = true
	v.fetchGen++
	v.mu.Unlock()

	v.debouncer.Stop()
	v.orch.Close()
}

func (v *StaffView) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	if v.InputActive() {
		return event
	}
	if v.bindings.Handle(event) {
		return nil
	}
	return event
}

func (v *StaffView) fetch(initial bool) {
	v.mu.Lock()
	v.fetchGen++
	gen := v.fetchGen
	v.mu.Unlock()

	if initial {
		v.app.QueueUpdateDraw(func() {
			v.table.SetTitle(" Staff (loading…) ")
		})
	}

	staff, err := v.app.Client().ListAllStaff(v.app.GetContext(), api.ListOptions{})
	if err != nil {
		v.app.Flash(fmt.Sprintf("Failed to fetch staff: %v", err), true)
		return
	}

	if c := v.app.Cache(); c != nil {
		if err := c.SaveStaff(staff); err != nil {
			logger.Log.Debugf("Failed to cache staff: %v", err)
		}
	}

	v.app.QueueUpdateDraw(func() {
		v.mu.Lock()
		if gen != v.fetchGen || v.stopped {
			v.mu.Unlock()
			return
		}
		v.staff = staff
		v.mu.Unlock()

		v.render()
	})
}

func (v *StaffView) render() {
	v.mu.Lock()
	view := v.schema.Apply(v.staff, v.d)
	if clamped := collection.ClampPage(v.d.Page, view.TotalFiltered, v.d.PageSize); clamped != v.d.Page {
		v.d.Page = clamped
		view = v.schema.Apply(v.staff, v.d)
	}
	d := v.d
	v.mu.Unlock()

	v.table.ClearRows()
	for _, m := range view.Page {
		v.table.AddRow([]string{
			m.ID,
			m.FullName,
			m.Email,
			m.Role,
			m.StationID,
			v.app.styles.FormatStatus(m.Status),
		}, m)
	}

	v.table.SetTitle(fmt.Sprintf(" Staff (%d) [gray]status: %s  role: %s[-] ",
		view.TotalFiltered,
		countsLabel(d.Status, view.StatusCounts),
		labelOrAll(d.Kind)))

	footer := " " + pageStripText(d.Page, view.TotalPages, 7)
	snap := v.orch.State()
	switch snap.Phase {
	case mutation.PhasePending:
		footer += "  [yellow]working…[-]"
	case mutation.PhaseSuccess:
		footer += "  [green]done[-]"
	case mutation.PhaseError:
		footer += "  [red]" + snap.Message + "[-]"
		if !snap.Ambiguous {
			footer += " <r> retry"
		}
		footer += " <x> dismiss"
	}
	v.footer.SetText(footer)
}

func (v *StaffView) enterSearch() {
	v.bindings.SetMode(ModeSearch)
	v.layout.Clear()
	v.layout.AddItem(v.searchInput, 1, 0, true).
		AddItem(v.table, 0, 1, false).
		AddItem(v.footer, 1, 0, false)
	v.app.SetFocus(v.searchInput)
}

func (v *StaffView) leaveSearch() {
	v.bindings.SetMode(ModeNormal)
	v.layout.Clear()
	v.layout.AddItem(v.table, 0, 1, true).
		AddItem(v.footer, 1, 0, false)
	v.app.SetFocus(v.table)
}

func (v *StaffView) changePage(delta int) {
	v.mu.Lock()
	view := v.schema.Apply(v.staff, v.d)
	target := collection.ClampPage(v.d.Page+delta, view.TotalFiltered, v.d.PageSize)
	changed := target != v.d.Page
	v.d.Page = target
	v.mu.Unlock()

	if changed {
		v.render()
	}
}

// promptCreate opens the new-account form. The form validates locally and
// keeps focus on the failing state instead of submitting bad input.
func (v *StaffView) promptCreate() {
	v.bindings.SetMode(ModeModal)

	form := tview.NewForm().
		AddInputField("Full name", "", 40, nil, nil).
		AddInputField("Email", "", 40, nil, nil).
		AddInputField("Phone", "", 20, nil, nil).
		AddDropDown("Role", []string{api.RoleManager, api.RoleTechnician, api.RoleSupport}, 1, nil).
		AddInputField("Station ID", "", 20, nil, nil)
	form.SetBorder(true).SetTitle(" New staff account ")

	form.AddButton("Create", func() {
		input := api.StaffInput{
			FullName:  form.GetFormItemByLabel("Full name").(*tview.InputField).GetText(),
			Email:     form.GetFormItemByLabel("Email").(*tview.InputField).GetText(),
			Phone:     form.GetFormItemByLabel("Phone").(*tview.InputField).GetText(),
			StationID: form.GetFormItemByLabel("Station ID").(*tview.InputField).GetText(),
		}
		_, input.Role = form.GetFormItemByLabel("Role").(*tview.DropDown).GetCurrentOption()

		if err := api.ValidateInput(input); err != nil {
			v.app.Flash(err.Error(), true)
			return
		}

		v.closeModal()
		v.runCreate(input)
	})
	form.AddButton("Cancel", func() {
		v.closeModal()
	})
	form.SetCancelFunc(func() {
		v.closeModal()
	})

	v.showModal(form, 60, 15)
}

func (v *StaffView) runCreate(input api.StaffInput) {
	// One key per logical creation: a retry after an ambiguous timeout
	// resubmits the original request instead of creating a duplicate.
	key := api.NewIdempotencyKey()

	go func() {
		err := v.orch.Invoke(v.app.GetContext(), func(ctx context.Context) error {
			_, err := v.app.Client().CreateStaff(ctx, input, key)
			return err
		})
		if err == mutation.ErrBusy {
			v.app.Flash("Another mutation is already in progress", true)
		}
	}()
}

// promptDelete shows a confirmation modal for the highlighted account.
func (v *StaffView) promptDelete() {
	ref := v.table.SelectedReference()
	m, ok := ref.(api.Staff)
	if !ok {
		v.app.Flash("No staff account selected", true)
		return
	}

	v.bindings.SetMode(ModeModal)

	modal := tview.NewModal().
		SetText(fmt.Sprintf("Delete staff account %s (%s)?", m.FullName, m.Email)).
		AddButtons([]string{"Delete", "Cancel"}).
		SetDoneFunc(func(index int, label string) {
			v.closeModal()
			if label == "Delete" {
				v.runDelete(m.ID)
			}
		})

	v.showModal(modal, 60, 10)
}

func (v *StaffView) runDelete(id string) {
	go func() {
		err := v.orch.Invoke(v.app.GetContext(), func(ctx context.Context) error {
			return v.gate.Do(id, func() error {
				return v.app.Client().DeleteStaff(ctx, id)
			})
		})
		if err == mutation.ErrBusy {
			v.app.Flash("Another mutation is already in progress", true)
		}
	}()
}

func (v *StaffView) showModal(p tview.Primitive, width, height int) {
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

func (v *StaffView) closeModal() {
	v.bindings.SetMode(ModeNormal)
	v.leaveSearch()
}

func labelOrAll(value string) string {
	if value == "" {
		return collection.FilterAll
	}
	return value
}
