package collection

import "sync"

// Selection tracks the set of checked record IDs for bulk actions. The set is
// independent of the filtered view: a record selected on one page stays
// selected while the user re-filters, and is only dropped when the record
// disappears from the raw collection (Prune) or the user clears it.
type Selection struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle flips the selected state of one ID.
func (s *Selection) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// SelectAll acts on the currently visible IDs as a toggle: if every visible ID
// is already selected they are all deselected, otherwise all of them are
// selected. Selections outside the visible set are left alone, so calling it
// twice on an unchanged visible set restores the original state.
func (s *Selection) SelectAll(visibleIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(visibleIDs) == 0 {
		return
	}

	allSelected := true
	for _, id := range visibleIDs {
		if _, ok := s.ids[id]; !ok {
			allSelected = false
			break
		}
	}

	for _, id := range visibleIDs {
		if allSelected {
			delete(s.ids, id)
		} else {
			s.ids[id] = struct{}{}
		}
	}
}

// Clear drops every selected ID.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
}

// IsSelected reports whether id is selected.
func (s *Selection) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of selected IDs.
func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the selected IDs in unspecified order.
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// Prune removes selections whose records are gone from the raw collection,
// keeping the invariant selection ⊆ ids(collection). Call it after every
// collection refresh.
func (s *Selection) Prune(liveIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := make(map[string]struct{}, len(liveIDs))
	for _, id := range liveIDs {
		live[id] = struct{}{}
	}

	for id := range s.ids {
		if _, ok := live[id]; !ok {
			delete(s.ids, id)
		}
	}
}
