package richedit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	body, err := ParseEditable(`<p>Hello</p>`)
	require.NoError(t, err)

	e := New(body)

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Same(t, body, e.Editable())
	assert.True(t, e.cfg.NeedEndingBreak)
	assert.True(t, e.cfg.FillUp)
	assert.Equal(t, DefaultEphemeralClass, e.cfg.EphemeralClass)
	assert.Nil(t, e.Selection().Range())
	assert.NotEqual(t, e.ID, New(body).ID)
}

func TestNewAppliesOptions(t *testing.T) {
	e, _ := newTestEditor(t, `<h1>Title</h1>`,
		WithEphemeralClass("filler"),
		WithEndingBreak(false),
	)
	assert.False(t, e.cfg.NeedEndingBreak)

	e.SetCaret(nodeAt(t, e, 0, 0), 5)
	e.SplitRangeObject()

	assert.Equal(t, `<h1>Title</h1><p><br class="filler"/></p>`, rawContents(t, e))
	assert.Equal(t, `<h1>Title</h1><p></p>`, contents(t, e))
}

func TestContents(t *testing.T) {
	e, _ := newTestEditor(t, `<p>a<br class="richedit-ephemera"></p><ul><li><br class="other richedit-ephemera"></li></ul>`)

	assert.Equal(t, `<p>a</p><ul><li></li></ul>`, contents(t, e))
	// the document itself keeps its breaks
	assert.Equal(t, `<p>a<br class="richedit-ephemera"/></p><ul><li><br class="other richedit-ephemera"/></li></ul>`, rawContents(t, e))
}

func TestSetSelection(t *testing.T) {
	e, _ := newTestEditor(t, `<p>Hello</p>`)
	text := nodeAt(t, e, 0, 0)

	rng := e.SetSelection(text, 1, text, 3)

	assert.False(t, rng.Collapsed())
	assert.Same(t, rng, e.Selection().Range())
	assert.Same(t, e.Editable(), rng.LimitObject)
	assert.Equal(t, nodeAt(t, e, 0), rng.SplitObject)
}
