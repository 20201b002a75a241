package richedit

import "sync"

// Key codes with built-in behavior.
const (
	KeyEnter = 13
)

// EventKeyDown is the only event type PreProcessKeyStrokes acts on.
const EventKeyDown = "keydown"

// KeyEvent is a keystroke reported by the host.
type KeyEvent struct {
	Type    string
	KeyCode int
	Shift   bool
	Ctrl    bool
	Alt     bool
	Meta    bool
}

// KeyHandler inspects a key event before the editor acts on it. Returning
// false cancels the dispatch.
type KeyHandler func(KeyEvent) bool

type keyRegistry struct {
	mu sync.RWMutex

	// handlers maps key codes to handlers in registration order
	handlers map[int][]KeyHandler
}

func newKeyRegistry() *keyRegistry {
	return &keyRegistry{
		handlers: make(map[int][]KeyHandler),
	}
}

func (r *keyRegistry) add(code int, h KeyHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[code] = append(r.handlers[code], h)
}

func (r *keyRegistry) lookup(code int) []KeyHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]KeyHandler(nil), r.handlers[code]...)
}

// AddKeyHandler registers h for key code. Handlers run in registration order.
func (e *Editor) AddKeyHandler(code int, h KeyHandler) {
	e.keys.add(code, h)
}

// PreProcessKeyStrokes handles a key event and reports whether the host
// should still run its default action.
func (e *Editor) PreProcessKeyStrokes(ev KeyEvent) bool {
	if ev.Type != EventKeyDown {
		return true
	}

	for _, h := range e.keys.lookup(ev.KeyCode) {
		if !h(ev) {
			e.log.WithField("keyCode", ev.KeyCode).Debug("key handler cancelled dispatch")
			return false
		}
	}

	if ev.KeyCode != KeyEnter {
		return true
	}

	rng := e.sel.Range()
	if rng == nil {
		e.log.Warn("enter without an active range")
		return false
	}
	if !rng.Collapsed() {
		e.RemoveSelectedMarkup()
		rng = e.sel.Range()
	}
	e.sel.Update(rng, nil)

	if ev.Shift {
		e.log.Debug("shift+enter, inserting line break")
		e.InsertHTMLBreak(e.sel.SelectionTree(rng), rng)
		return false
	}

	if rng.SplitObject != nil {
		e.log.WithField("tag", rng.SplitObject.Data).Debug("enter, splitting block")
		e.splitRangeObject(rng)
	} else {
		// the editable itself is the paragraph
		e.InsertHTMLBreak(e.sel.SelectionTree(rng), rng)
	}
	return false
}
