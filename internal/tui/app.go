// Package tui is the interactive terminal console for VoltRide operations,
// built as a k9s-style stack of table views over the shared collection
// pipeline.
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
	"github.com/voltride/voltdesk/internal/cache"
)

// Config holds the TUI dependencies.
type Config struct {
	Client *api.Client
	Cache  *cache.Cache // optional snapshot cache for instant first paint
}

// inputAware is implemented by views that own a text input, so global rune
// shortcuts stay inert while the user is typing.
type inputAware interface {
	InputActive() bool
}

// App is the main TUI application.
type App struct {
	*tview.Application
	config     *Config
	styles     *Styles
	pageStack  *PageStack
	header     *tview.TextView
	crumbs     *tview.TextView
	statusBar  *tview.TextView
	flash      *tview.TextView
	globalKeys KeyActions
	ctx        context.Context
	cancel     context.CancelFunc
	flashMx    sync.Mutex
	flashGen   int
}

// NewApp creates the TUI application.
func NewApp(ctx context.Context, config *Config) (*App, error) {
	if config == nil || config.Client == nil {
		return nil, fmt.Errorf("tui: an API client is required")
	}

	ctx, cancel := context.WithCancel(ctx)

	tviewApp := tview.NewApplication()
	tviewApp.EnableMouse(true)

	app := &App{
		Application: tviewApp,
		config:      config,
		styles:      DefaultStyles(),
		globalKeys:  NewKeyActions(),
		ctx:         ctx,
		cancel:      cancel,
	}

	app.pageStack = NewPageStack(app, ctx)
	app.setupGlobalKeys()
	app.buildUI()

	return app, nil
}

func (a *App) setupGlobalKeys() {
	a.globalKeys.Add(tcell.KeyCtrlC, KeyAction{
		Description: "Quit",
		Action: func(evt *tcell.EventKey) *tcell.EventKey {
			a.Stop()
			return nil
		},
		Visible: true,
	})

	a.globalKeys.Add(tcell.KeyEscape, KeyAction{
		Description: "Back",
		Action: func(evt *tcell.EventKey) *tcell.EventKey {
			if a.pageStack.Depth() > 1 {
				a.pageStack.Pop()
				return nil
			}
			return evt
		},
		Visible: true,
	})
}

func (a *App) buildUI() {
	a.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.header.SetBackgroundColor(a.styles.BgColor)
	a.header.SetText("[aqua::b]voltdesk[-::-] [gray]1:stations 2:vehicles 3:staff 4:reports 5:dashboard[-]")

	a.crumbs = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.crumbs.SetBackgroundColor(a.styles.CrumbBg)
	a.crumbs.SetTextColor(a.styles.CrumbFg)

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.statusBar.SetBackgroundColor(a.styles.BgColor)

	a.flash = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.flash.SetBackgroundColor(a.styles.BgColor)

	mainFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.header, 1, 0, false).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.pageStack.Pages(), 0, 1, true).
		AddItem(a.statusBar, 1, 0, false).
		AddItem(a.flash, 1, 0, false)

	a.SetRoot(mainFlex, true)
	a.SetInputCapture(a.handleGlobalKeys)
}

// handleGlobalKeys routes events: global shortcuts first, then the active
// view. Rune shortcuts are suppressed while a view's input field has focus.
func (a *App) handleGlobalKeys(event *tcell.EventKey) *tcell.EventKey {
	comp := a.pageStack.Top()

	typing := false
	if ia, ok := comp.(inputAware); ok {
		typing = ia.InputActive()
	}

	if event.Key() == tcell.KeyRune && !typing {
		switch event.Rune() {
		case '?':
			a.ShowHelp()
			return nil
		case '1':
			a.switchTo(func() Component { return NewStationView(a) }, "Stations")
			return nil
		case '2':
			a.switchTo(func() Component { return NewVehicleView(a) }, "Vehicles")
			return nil
		case '3':
			a.switchTo(func() Component { return NewStaffView(a) }, "Staff")
			return nil
		case '4':
			a.switchTo(func() Component { return NewReportView(a) }, "Reports")
			return nil
		case '5':
			a.switchTo(func() Component { return NewDashboardView(a) }, "Dashboard")
			return nil
		}
	}

	if event.Key() != tcell.KeyRune {
		if action, ok := a.globalKeys.Get(event.Key()); ok {
			if result := action.Action(event); result == nil {
				return nil
			}
		}
	}

	if comp != nil {
		if event.Key() != tcell.KeyRune {
			if action, ok := comp.Actions().Get(event.Key()); ok {
				return action.Action(event)
			}
		}
		return comp.HandleKey(event)
	}

	return event
}

// switchTo replaces the stack with a fresh root view unless it is already on
// top.
func (a *App) switchTo(build func() Component, name string) {
	if top := a.pageStack.Top(); top != nil && top.Name() == name {
		return
	}

	a.pageStack.Clear()

	if err := a.pageStack.Push(build()); err != nil {
		a.Flash(fmt.Sprintf("Failed to open %s: %v", name, err), true)
	}
}

// Run starts the TUI on the vehicle fleet view.
func (a *App) Run() error {
	if err := a.pageStack.Push(NewVehicleView(a)); err != nil {
		return fmt.Errorf("failed to initialize vehicle view: %w", err)
	}

	return a.Application.Run()
}

// Stop stops the TUI application.
func (a *App) Stop() {
	a.cancel()
	a.pageStack.Stop()
	a.Application.Stop()
}

func (a *App) updateCrumbs() {
	crumbs := a.pageStack.GetCrumbs()
	if len(crumbs) == 0 {
		a.crumbs.SetText("")
		return
	}

	a.crumbs.SetText("[gray]voltdesk > " + strings.Join(crumbs, " > ") + "[-]")
}

// UpdateStatus sets the status bar from the active view's hints.
func (a *App) UpdateStatus(extra string) {
	var hints []string

	if comp := a.pageStack.Top(); comp != nil {
		hints = comp.Actions().Hints()
	}

	hints = append(hints, "<Esc> Back", "<^C> Quit", "<?> Help")
	if extra != "" {
		hints = append(hints, "[gray]"+extra+"[-]")
	}

	statusText := strings.Join(hints, " ")
	a.QueueUpdateDraw(func() {
		a.statusBar.SetText(" " + statusText)
	})
}

// Flash displays a temporary message for 3 seconds. A newer flash supersedes
// the pending clear of an older one.
func (a *App) Flash(message string, isError bool) {
	a.flashMx.Lock()
	a.flashGen++
	gen := a.flashGen
	a.flashMx.Unlock()

	color := "green"
	if isError {
		color = "red"
	}

	a.QueueUpdateDraw(func() {
		a.flash.SetText(fmt.Sprintf("[%s::b] %s ", color, message))
	})

	go func() {
		select {
		case <-a.ctx.Done():
			return
		case <-time.After(3 * time.Second):
			a.flashMx.Lock()
			current := a.flashGen
			a.flashMx.Unlock()
			if current != gen {
				return
			}
			a.ClearFlash()
		}
	}()
}

// ClearFlash clears the flash message.
func (a *App) ClearFlash() {
	a.QueueUpdateDraw(func() {
		a.flash.SetText("")
	})
}

// ShowHelp displays the help view.
func (a *App) ShowHelp() {
	if top := a.pageStack.Top(); top != nil && top.Name() == "Help" {
		return
	}

	if err := a.pageStack.Push(NewHelpView(a)); err != nil {
		a.Flash("Failed to show help", true)
	}
}

// Client returns the backend API client.
func (a *App) Client() *api.Client {
	return a.config.Client
}

// Cache returns the snapshot cache, possibly nil.
func (a *App) Cache() *cache.Cache {
	return a.config.Cache
}

// GetStyles returns the app styles.
func (a *App) GetStyles() *Styles {
	return a.styles
}

// GetContext returns the app context.
func (a *App) GetContext() context.Context {
	return a.ctx
}
