package matrixscene

// focusRing is the ordered set of focusable ids a Scene or Layout cycles
// through, plus the current focus. The ring is rebuilt whenever the owner's
// node set changes; the zero value is an empty ring with no focus.
type focusRing struct {
	ids     []string
	current string // "" = unfocused
}

// lookupFunc resolves an id to its component so focus transitions can fire
// the component's lifecycle hooks.
type lookupFunc func(id string) Component

// rebuild replaces the ring's ids. If the currently focused id is no longer
// present, focus falls back to none (the vanished component's focus-lost
// hooks cannot fire, it is already gone from the tree).
func (r *focusRing) rebuild(ids []string, lookup lookupFunc, report func(error)) {
	r.ids = ids
	if r.current == "" {
		return
	}
	for _, id := range ids {
		if id == r.current {
			return
		}
	}
	r.current = ""
}

// indexOf returns the position of id in the ring, or -1.
func (r *focusRing) indexOf(id string) int {
	for i, rid := range r.ids {
		if rid == id {
			return i
		}
	}
	return -1
}

// acceptsFocus re-checks an entry's focusability at traversal time. Ring
// membership is sampled when the node set changes, but focusability can
// shift between rebuilds (a Text whose content no longer overflows).
func (r *focusRing) acceptsFocus(id string, lookup lookupFunc) bool {
	if lookup == nil {
		return true
	}
	c := lookup(id)
	return c != nil && c.IsFocusable()
}

// next advances focus to the following ring entry that still accepts focus,
// wrapping from the last entry to the first. On an empty ring this is a
// no-op; with no current focus it starts from the first entry.
func (r *focusRing) next(lookup lookupFunc, report func(error)) {
	n := len(r.ids)
	if n == 0 {
		return
	}
	i := r.indexOf(r.current)
	for step := 1; step <= n; step++ {
		id := r.ids[(i+step)%n]
		if r.acceptsFocus(id, lookup) {
			r.moveTo(id, lookup, report)
			return
		}
	}
}

// previous moves focus to the preceding ring entry that still accepts
// focus, wrapping from the first entry to the last. With no current focus
// it starts from the last entry.
func (r *focusRing) previous(lookup lookupFunc, report func(error)) {
	n := len(r.ids)
	if n == 0 {
		return
	}
	i := r.indexOf(r.current)
	if i < 0 {
		i = 0
	}
	for step := 1; step <= n; step++ {
		id := r.ids[(i-step+2*n)%n]
		if r.acceptsFocus(id, lookup) {
			r.moveTo(id, lookup, report)
			return
		}
	}
}

// set focuses id directly. Ids absent from the ring, or no longer
// focusable, produce an UnknownFocusTargetError and leave the current
// focus untouched.
func (r *focusRing) set(id string, lookup lookupFunc, report func(error)) error {
	if r.indexOf(id) < 0 || !r.acceptsFocus(id, lookup) {
		return UnknownFocusTargetError{ID: id}
	}
	r.moveTo(id, lookup, report)
	return nil
}

// clear drops focus, firing the losing component's focus-lost hooks.
func (r *focusRing) clear(lookup lookupFunc, report func(error)) {
	r.moveTo("", lookup, report)
}

// moveTo performs the focus transition: the losing component's focus-lost
// hooks fire before the gaining component's focus-gain hooks.
func (r *focusRing) moveTo(id string, lookup lookupFunc, report func(error)) {
	if id == r.current {
		return
	}
	if r.current != "" && lookup != nil {
		if c := lookup(r.current); c != nil {
			if f, ok := c.(interface {
				setFocused(bool, func(error))
			}); ok {
				f.setFocused(false, report)
			}
		}
	}
	r.current = id
	if id != "" && lookup != nil {
		if c := lookup(id); c != nil {
			if f, ok := c.(interface {
				setFocused(bool, func(error))
			}); ok {
				f.setFocused(true, report)
			}
		}
	}
}
