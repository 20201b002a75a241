package richedit

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keyA = 65

func TestPreProcessKeyStrokesIgnoresOtherEvents(t *testing.T) {
	e, _ := newTestEditor(t, `<p>Hello</p>`)
	e.SetCaret(nodeAt(t, e, 0, 0), 2)
	called := false
	e.AddKeyHandler(KeyEnter, func(KeyEvent) bool {
		called = true
		return false
	})

	assert.True(t, e.PreProcessKeyStrokes(KeyEvent{Type: "keyup", KeyCode: KeyEnter}))
	assert.True(t, e.PreProcessKeyStrokes(KeyEvent{Type: "keypress", KeyCode: KeyEnter}))
	assert.False(t, called)
	assert.Equal(t, `<p>Hello</p>`, rawContents(t, e))
}

func TestPreProcessKeyStrokesOtherKeys(t *testing.T) {
	e, _ := newTestEditor(t, `<p>Hello</p>`)
	e.SetCaret(nodeAt(t, e, 0, 0), 2)

	var order []string
	record := func(name string) KeyHandler {
		return func(KeyEvent) bool {
			order = append(order, name)
			return true
		}
	}
	e.AddKeyHandler(keyA, record("first"))
	e.AddKeyHandler(keyA, record("second"))

	assert.True(t, e.PreProcessKeyStrokes(KeyEvent{Type: EventKeyDown, KeyCode: keyA}))
	if diff := cmp.Diff([]string{"first", "second"}, order); diff != "" {
		t.Errorf("handler order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, `<p>Hello</p>`, rawContents(t, e))
}

func TestKeyHandlerCancels(t *testing.T) {
	e, _ := newTestEditor(t, `<p>Hello</p>`)
	e.SetCaret(nodeAt(t, e, 0, 0), 2)

	later := false
	e.AddKeyHandler(KeyEnter, func(ev KeyEvent) bool { return ev.Shift })
	e.AddKeyHandler(KeyEnter, func(KeyEvent) bool {
		later = true
		return true
	})

	assert.False(t, e.PreProcessKeyStrokes(enter(false)))
	assert.False(t, later)
	assert.Equal(t, `<p>Hello</p>`, rawContents(t, e))

	// the first handler lets Shift+Enter through
	assert.False(t, e.PreProcessKeyStrokes(enter(true)))
	assert.True(t, later)
	assert.Equal(t, `<p>He<br/>llo</p>`, contents(t, e))
}

func TestEnterSplits(t *testing.T) {
	e, _ := newTestEditor(t, `<p>Hello World</p>`)
	e.SetCaret(nodeAt(t, e, 0, 0), 5)

	assert.False(t, e.PreProcessKeyStrokes(enter(false)))
	assert.Equal(t, `<p>Hello</p><p> World</p>`, contents(t, e))
}

func TestShiftEnterInsertsBreak(t *testing.T) {
	e, _ := newTestEditor(t, `<p>Hello World</p>`)
	e.SetCaret(nodeAt(t, e, 0, 0), 5)

	assert.False(t, e.PreProcessKeyStrokes(enter(true)))
	assert.Equal(t, `<p>Hello<br/> World</p>`, contents(t, e))
}

func TestEnterWithoutRange(t *testing.T) {
	e, hook := newTestEditor(t, `<p>Hello</p>`)

	assert.False(t, e.PreProcessKeyStrokes(enter(false)))
	assert.True(t, hasMessage(hook, logrus.WarnLevel, "without an active range"))
}

func TestAddKeyHandlerConcurrent(t *testing.T) {
	e, _ := newTestEditor(t, `<p>Hello</p>`)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.AddKeyHandler(keyA, func(KeyEvent) bool { return true })
			e.PreProcessKeyStrokes(KeyEvent{Type: EventKeyDown, KeyCode: keyA})
		}()
	}
	wg.Wait()

	assert.Len(t, e.keys.lookup(keyA), 50)
}

func TestScriptKeyHandler(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	tests := []struct {
		name string
		src  string
		ev   KeyEvent
		want bool
	}{
		{"returns false", `function(ev) { return false }`, enter(false), false},
		{"returns true", `function(ev) { return true }`, enter(false), true},
		{"no return value", `function(ev) {}`, enter(false), true},
		{"null", `function(ev) { return null }`, enter(false), true},
		{"reads shift", `function(ev) { return !ev.shiftKey }`, enter(true), false},
		{"reads key code", `function(ev) { return ev.keyCode !== 13 }`, enter(false), false},
		{
			name: "reads modifiers",
			src:  `function(ev) { return ev.type === "keydown" && ev.ctrlKey && ev.altKey && ev.metaKey }`,
			ev:   KeyEvent{Type: EventKeyDown, KeyCode: keyA, Ctrl: true, Alt: true, Meta: true},
			want: true,
		},
		{"arrow function", `ev => ev.keyCode === 65`, KeyEvent{Type: EventKeyDown, KeyCode: keyA}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewScriptKeyHandler(tt.src, logger)
			require.NoError(t, err)
			assert.Equal(t, tt.want, h(tt.ev))
		})
	}
	assert.Empty(t, hook.AllEntries())
}

func TestScriptKeyHandlerRuntimeError(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	h, err := NewScriptKeyHandler(`function(ev) { throw new Error("boom") }`, logger)
	require.NoError(t, err)

	assert.True(t, h(enter(false)))
	assert.True(t, hasMessage(hook, logrus.WarnLevel, "key handler script failed"))
}

func TestScriptKeyHandlerInvalid(t *testing.T) {
	_, err := NewScriptKeyHandler(`function(ev) {`, nil)
	assert.Error(t, err)

	_, err = NewScriptKeyHandler(`42`, nil)
	assert.EqualError(t, err, "key handler script is not a function")
}

func TestAddScriptKeyHandler(t *testing.T) {
	e, _ := newTestEditor(t, `<p>Hello</p>`)
	e.SetCaret(nodeAt(t, e, 0, 0), 2)

	require.NoError(t, e.AddScriptKeyHandler(KeyEnter, `function(ev) { return ev.shiftKey }`))
	assert.Error(t, e.AddScriptKeyHandler(KeyEnter, `not valid (`))

	assert.False(t, e.PreProcessKeyStrokes(enter(false)))
	assert.Equal(t, `<p>Hello</p>`, rawContents(t, e))
}
