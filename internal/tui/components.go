package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Component is a TUI view with lifecycle management. Views are pushed onto
// the page stack and started when they become visible.
type Component interface {
	// Name returns the component name shown in the breadcrumb
	Name() string

	// Init initializes the component (called once when pushed)
	Init(ctx context.Context) error

	// Start is called when the component becomes active
	Start(ctx context.Context)

	// Stop is called when the component becomes inactive
	Stop()

	// Primitive returns the tview primitive for rendering
	Primitive() tview.Primitive

	// Actions returns the keyboard actions for this component
	Actions() *KeyActions

	// HandleKey handles keyboard events not covered by actions
	HandleKey(event *tcell.EventKey) *tcell.EventKey
}

// BaseComponent provides default implementations for Component.
type BaseComponent struct {
	name    string
	actions KeyActions
}

func NewBaseComponent(name string) *BaseComponent {
	return &BaseComponent{
		name:    name,
		actions: NewKeyActions(),
	}
}

func (b *BaseComponent) Name() string {
	return b.name
}

func (b *BaseComponent) Init(ctx context.Context) error {
	return nil
}

func (b *BaseComponent) Start(ctx context.Context) {
}

func (b *BaseComponent) Stop() {
}

func (b *BaseComponent) Actions() *KeyActions {
	return &b.actions
}

// HandleKey passes unhandled events through.
func (b *BaseComponent) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	return event
}
