package tui

import (
	"context"
	"sync"

	"github.com/rivo/tview"
)

// PageStack manages the navigation stack of view components.
type PageStack struct {
	pages  *tview.Pages
	stack  []Component
	app    *App
	mx     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
}

func NewPageStack(app *App, ctx context.Context) *PageStack {
	ctx, cancel := context.WithCancel(ctx)
	return &PageStack{
		pages:  tview.NewPages(),
		stack:  make([]Component, 0),
		app:    app,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (ps *PageStack) Pages() *tview.Pages {
	return ps.pages
}

// Push initializes and activates a new component on top of the stack.
func (ps *PageStack) Push(component Component) error {
	ps.mx.Lock()
	defer ps.mx.Unlock()

	if err := component.Init(ps.ctx); err != nil {
		return err
	}

	if len(ps.stack) > 0 {
		ps.stack[len(ps.stack)-1].Stop()
	}

	ps.stack = append(ps.stack, component)

	ps.pages.AddPage(component.Name(), component.Primitive(), true, true)
	ps.pages.SwitchToPage(component.Name())

	component.Start(ps.ctx)

	ps.app.updateCrumbs()

	return nil
}

// Pop deactivates the top component and restarts the one below.
func (ps *PageStack) Pop() Component {
	ps.mx.Lock()
	defer ps.mx.Unlock()

	if len(ps.stack) == 0 {
		return nil
	}

	component := ps.stack[len(ps.stack)-1]
	ps.stack = ps.stack[:len(ps.stack)-1]

	component.Stop()
	ps.pages.RemovePage(component.Name())

	if len(ps.stack) > 0 {
		prev := ps.stack[len(ps.stack)-1]
		ps.pages.SwitchToPage(prev.Name())
		prev.Start(ps.ctx)
	}

	ps.app.updateCrumbs()

	return component
}

func (ps *PageStack) Top() Component {
	ps.mx.RLock()
	defer ps.mx.RUnlock()

	if len(ps.stack) == 0 {
		return nil
	}
	return ps.stack[len(ps.stack)-1]
}

func (ps *PageStack) Depth() int {
	ps.mx.RLock()
	defer ps.mx.RUnlock()
	return len(ps.stack)
}

// Clear stops and removes every component.
func (ps *PageStack) Clear() {
	ps.mx.Lock()
	defer ps.mx.Unlock()

	for _, component := range ps.stack {
		component.Stop()
	}

	for _, component := range ps.stack {
		ps.pages.RemovePage(component.Name())
	}

	ps.stack = make([]Component, 0)
	ps.app.updateCrumbs()
}

// GetCrumbs returns the breadcrumb path.
func (ps *PageStack) GetCrumbs() []string {
	ps.mx.RLock()
	defer ps.mx.RUnlock()

	crumbs := make([]string, len(ps.stack))
	for i, component := range ps.stack {
		crumbs[i] = component.Name()
	}
	return crumbs
}

// Stop stops the page stack and all components.
func (ps *PageStack) Stop() {
	ps.cancel()
	ps.Clear()
}
