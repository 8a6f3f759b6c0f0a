package tui

import (
	"github.com/gdamore/tcell/v2"
)

// ViewMode tracks the input state of a view. Rune shortcuts are only live in
// ModeNormal so typing into a search field never triggers them.
type ViewMode int

const (
	ModeNormal ViewMode = iota
	ModeSearch
	ModeModal
)

// KeyBinding defines one keyboard shortcut, rune or special key.
type KeyBinding struct {
	Key         tcell.Key
	Rune        rune
	Description string
	Modes       []ViewMode // empty = all modes
	Handler     func() bool
}

// KeyBindings dispatches rune-level shortcuts for a view.
type KeyBindings struct {
	bindings []KeyBinding
	mode     ViewMode
}

func NewKeyBindings() *KeyBindings {
	return &KeyBindings{
		bindings: make([]KeyBinding, 0),
		mode:     ModeNormal,
	}
}

func (kb *KeyBindings) SetMode(mode ViewMode) {
	kb.mode = mode
}

func (kb *KeyBindings) GetMode() ViewMode {
	return kb.mode
}

func (kb *KeyBindings) Register(binding KeyBinding) {
	kb.bindings = append(kb.bindings, binding)
}

// RegisterKey registers a character shortcut.
func (kb *KeyBindings) RegisterKey(r rune, description string, modes []ViewMode, handler func() bool) {
	kb.Register(KeyBinding{
		Key:         tcell.KeyRune,
		Rune:        r,
		Description: description,
		Modes:       modes,
		Handler:     handler,
	})
}

// RegisterSpecial registers a special-key shortcut.
func (kb *KeyBindings) RegisterSpecial(key tcell.Key, description string, modes []ViewMode, handler func() bool) {
	kb.Register(KeyBinding{
		Key:         key,
		Description: description,
		Modes:       modes,
		Handler:     handler,
	})
}

// Handle processes a key event and reports whether it was consumed.
func (kb *KeyBindings) Handle(event *tcell.EventKey) bool {
	for _, binding := range kb.bindings {
		if len(binding.Modes) > 0 {
			modeMatch := false
			for _, m := range binding.Modes {
				if m == kb.mode {
					modeMatch = true
					break
				}
			}
			if !modeMatch {
				continue
			}
		}

		if event.Key() == tcell.KeyRune {
			if binding.Key == tcell.KeyRune && binding.Rune == event.Rune() {
				if binding.Handler() {
					return true
				}
			}
		} else {
			if binding.Key == event.Key() {
				if binding.Handler() {
					return true
				}
			}
		}
	}
	return false
}

// HelpEntry is one line of the help screen.
type HelpEntry struct {
	Key         string
	Description string
}

// GetHelpText returns formatted help entries for all described bindings.
func (kb *KeyBindings) GetHelpText() []HelpEntry {
	entries := make([]HelpEntry, 0, len(kb.bindings))
	for _, b := range kb.bindings {
		if b.Description == "" {
			continue
		}
		entries = append(entries, HelpEntry{
			Key:         kb.formatKey(b),
			Description: b.Description,
		})
	}
	return entries
}

func (kb *KeyBindings) formatKey(b KeyBinding) string {
	if b.Key == tcell.KeyRune {
		if b.Rune == ' ' {
			return "Space"
		}
		return string(b.Rune)
	}
	switch b.Key {
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyEscape:
		return "Esc"
	case tcell.KeyTab:
		return "Tab"
	case tcell.KeyCtrlC:
		return "Ctrl+C"
	case tcell.KeyCtrlR:
		return "Ctrl+R"
	case tcell.KeyLeft:
		return "←"
	case tcell.KeyRight:
		return "→"
	default:
		return "?"
	}
}
