package richedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertIntoDOM(t *testing.T) {
	dom := &DefaultDOMUtil{EphemeralClass: DefaultEphemeralClass}

	t.Run("splits text at the caret", func(t *testing.T) {
		body, err := ParseEditable(`<p>Hello</p>`)
		require.NoError(t, err)
		rng := NewCaret(body.FirstChild.FirstChild, 2, body)

		ok := dom.InsertIntoDOM(newElement("br"), rng, body)

		assert.True(t, ok)
		assert.Equal(t, `<p>He<br/>llo</p>`, render(t, body.FirstChild))
	})

	t.Run("element caret", func(t *testing.T) {
		body, err := ParseEditable(`<p>a<b>b</b></p>`)
		require.NoError(t, err)
		rng := NewCaret(body.FirstChild, 1, body)

		assert.True(t, dom.InsertIntoDOM(newElement("br"), rng, body))
		assert.Equal(t, `<p>a<br/><b>b</b></p>`, render(t, body.FirstChild))
	})

	t.Run("climbs out of inline containers", func(t *testing.T) {
		body, err := ParseEditable(`<p><b>ab</b></p>`)
		require.NoError(t, err)
		rng := NewCaret(body.FirstChild.FirstChild.FirstChild, 1, body)

		assert.True(t, dom.InsertIntoDOM(newElement("div"), rng, body))
		s, err := RenderChildren(body)
		require.NoError(t, err)
		assert.Equal(t, `<p><b>ab</b></p><div></div>`, s)
	})

	t.Run("never climbs above the limit", func(t *testing.T) {
		body, err := ParseEditable(`<p><b>ab</b></p>`)
		require.NoError(t, err)
		p := body.FirstChild
		rng := NewCaret(p.FirstChild.FirstChild, 1, p)

		assert.False(t, dom.InsertIntoDOM(newElement("div"), rng, p))
		assert.Nil(t, p.NextSibling)
	})
}

func TestSearchAdjacentTextNode(t *testing.T) {
	dom := &DefaultDOMUtil{EphemeralClass: DefaultEphemeralClass}
	body, err := ParseEditable(`<p>a<b><i>x</i></b>c</p><div><p>d</p>e</div>`)
	require.NoError(t, err)
	p := body.FirstChild
	div := body.LastChild

	tests := []struct {
		name     string
		parent   int // 0 for p, 1 for div
		index    int
		backward bool
		opts     SearchOptions
		want     string
	}{
		{"descends forward", 0, 1, false, SearchOptions{}, "x"},
		{"descends backward", 0, 1, true, SearchOptions{}, "x"},
		{"direct text", 0, 0, true, SearchOptions{}, "a"},
		{"after last child climbs", 0, 3, false, SearchOptions{}, "d"},
		{"stops at own block", 0, 3, false, SearchOptions{StopAtBlocks: true}, ""},
		{"stops at child block", 1, 0, false, SearchOptions{StopAtBlocks: true}, ""},
		{"enters child block", 1, 0, false, SearchOptions{}, "d"},
		{"respects limit", 0, 3, false, SearchOptions{Limit: p}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := p
			if tt.parent == 1 {
				parent = div
			}
			got := dom.SearchAdjacentTextNode(parent, tt.index, tt.backward, tt.opts)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Data)
		})
	}
}

func TestDoCleanup(t *testing.T) {
	dom := &DefaultDOMUtil{EphemeralClass: DefaultEphemeralClass}
	body, err := ParseEditable(`<p>a<b></b>b<i>c</i><i>d</i></p>`)
	require.NoError(t, err)
	p := body.FirstChild
	b := p.FirstChild.NextSibling.NextSibling // text "b"
	d := p.LastChild.FirstChild               // text "d"
	rng := &Range{StartContainer: b, StartOffset: 1, EndContainer: d, EndOffset: 0}

	dom.DoCleanup(CleanupOptions{Merge: true, RemoveEmpty: true}, rng, p)

	assert.Equal(t, `<p>ab<i>cd</i></p>`, render(t, p))
	assert.Equal(t, "ab", rng.StartContainer.Data)
	assert.Equal(t, 2, rng.StartOffset)
	assert.Equal(t, "cd", rng.EndContainer.Data)
	assert.Equal(t, 1, rng.EndOffset)
}

func TestDoCleanupKeepsBlocksAndVoids(t *testing.T) {
	dom := &DefaultDOMUtil{EphemeralClass: DefaultEphemeralClass}
	body, err := ParseEditable(`<div><p></p><span></span><br><img src="x.png"></div>`)
	require.NoError(t, err)
	div := body.FirstChild

	dom.DoCleanup(CleanupOptions{RemoveEmpty: true}, nil, div)

	assert.Equal(t, `<div><p></p><br/><img src="x.png"/></div>`, render(t, div))
}

func TestDoCleanupMergeOnly(t *testing.T) {
	dom := &DefaultDOMUtil{EphemeralClass: DefaultEphemeralClass}
	body, err := ParseEditable(`<p><b class="x">a</b><b class="y">b</b><span></span></p>`)
	require.NoError(t, err)
	p := body.FirstChild

	dom.DoCleanup(CleanupOptions{Merge: true}, nil, p)

	// different attributes do not merge, empty elements stay
	assert.Equal(t, `<p><b class="x">a</b><b class="y">b</b><span></span></p>`, render(t, p))
}
