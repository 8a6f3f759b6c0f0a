package tui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ActionHandler handles a key action. Returning nil consumes the event.
type ActionHandler func(evt *tcell.EventKey) *tcell.EventKey

// KeyAction is one keyboard action.
type KeyAction struct {
	Description string
	Action      ActionHandler
	Visible     bool
	Dangerous   bool
}

// KeyActions manages special-key bindings for a component.
type KeyActions struct {
	actions map[tcell.Key]KeyAction
	mx      sync.RWMutex
}

func NewKeyActions() KeyActions {
	return KeyActions{
		actions: make(map[tcell.Key]KeyAction),
	}
}

func (k *KeyActions) Add(key tcell.Key, action KeyAction) {
	k.mx.Lock()
	defer k.mx.Unlock()
	k.actions[key] = action
}

func (k *KeyActions) Delete(key tcell.Key) {
	k.mx.Lock()
	defer k.mx.Unlock()
	delete(k.actions, key)
}

func (k *KeyActions) Get(key tcell.Key) (KeyAction, bool) {
	k.mx.RLock()
	defer k.mx.RUnlock()
	action, ok := k.actions[key]
	return action, ok
}

func (k *KeyActions) Clear() {
	k.mx.Lock()
	defer k.mx.Unlock()
	k.actions = make(map[tcell.Key]KeyAction)
}

// Hints returns visible action hints for the status bar.
func (k *KeyActions) Hints() []string {
	k.mx.RLock()
	defer k.mx.RUnlock()

	var hints []string
	keyOrder := []struct {
		key  tcell.Key
		name string
	}{
		{tcell.KeyEnter, "Enter"},
		{tcell.KeyEscape, "Esc"},
		{tcell.KeyCtrlR, "^R"},
		{tcell.KeyCtrlC, "^C"},
	}

	for _, ko := range keyOrder {
		if action, ok := k.actions[ko.key]; ok && action.Visible {
			hints = append(hints, "<"+ko.name+"> "+action.Description)
		}
	}

	return hints
}
