package richedit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestPathing(t *testing.T) {
	body, err := ParseEditable(`<div><p>Hello</p></div>`)
	require.NoError(t, err)

	// body -> div (0) -> p (0) -> text "Hello" (0)
	targetPath := NodePath{0, 0, 0}

	node, err := GetNode(body, targetPath)
	require.NoError(t, err)
	assert.Equal(t, html.TextNode, node.Type)
	assert.Equal(t, "Hello", node.Data)

	path, err := GetPath(body, node)
	require.NoError(t, err)
	if diff := cmp.Diff(targetPath, path); diff != "" {
		t.Errorf("GetPath mismatch (-want +got):\n%s", diff)
	}
}

func TestGetNodeErrors(t *testing.T) {
	body, err := ParseEditable(`<p>Hello</p>`)
	require.NoError(t, err)

	_, err = GetNode(body, NodePath{0, 3})
	assert.Error(t, err)

	_, err = GetPath(body, newText("stray"))
	assert.Error(t, err)
}

func TestParseFragmentInContext(t *testing.T) {
	body, err := ParseEditable(`<ul><li>a</li></ul>`)
	require.NoError(t, err)
	ul := body.FirstChild

	nodes, err := ParseFragment(`<li>b</li>`, ul)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "<li>b</li>", render(t, nodes[0]))

	nodes, err = ParseFragment(`<b>x</b> y`, nil)
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
}

func TestRuneSlice(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		from, to int
		want     string
	}{
		{"ascii", "Hello World", 0, 5, "Hello"},
		{"multibyte", "héllo", 1, 3, "él"},
		{"clamped", "abc", -2, 10, "abc"},
		{"empty", "abc", 2, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runeSlice(tt.s, tt.from, tt.to))
		})
	}
}

func TestSplitTextAt(t *testing.T) {
	tests := []struct {
		name    string
		offset  int
		want    []string
		refData string
	}{
		{"start", 0, []string{"Hello"}, "Hello"},
		{"middle", 2, []string{"He", "llo"}, "llo"},
		{"end", 5, []string{"Hello"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := ParseEditable(`<p>Hello</p>`)
			require.NoError(t, err)
			p := body.FirstChild

			ref := splitTextAt(p.FirstChild, tt.offset)

			var got []string
			for _, n := range textNodes(p) {
				got = append(got, n.Data)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("text nodes mismatch (-want +got):\n%s", diff)
			}
			if tt.refData == "" {
				assert.Nil(t, ref)
			} else {
				require.NotNil(t, ref)
				assert.Equal(t, tt.refData, ref.Data)
			}
		})
	}
}

func TestCloneNode(t *testing.T) {
	body, err := ParseEditable(`<p class="x">a<b>c</b></p>`)
	require.NoError(t, err)
	p := body.FirstChild

	deep := cloneNode(p, true)
	assert.Nil(t, deep.Parent)
	assert.Equal(t, `<p class="x">a<b>c</b></p>`, render(t, deep))

	shallow := cloneNode(p, false)
	assert.Equal(t, `<p class="x"></p>`, render(t, shallow))

	setAttr(deep, "class", "y")
	assert.Equal(t, "x", getAttr(p, "class"))
}

func TestClassHelpers(t *testing.T) {
	br := newElement("br")
	assert.False(t, hasClass(br, "richedit-ephemera"))

	addClass(br, "richedit-ephemera")
	addClass(br, "richedit-ephemera")
	assert.Equal(t, "richedit-ephemera", getAttr(br, "class"))

	addClass(br, "other")
	assert.True(t, hasClass(br, "other"))
	assert.Equal(t, "richedit-ephemera other", getAttr(br, "class"))
}

func TestTrimLeadingSpace(t *testing.T) {
	n := newText("   World")
	trimLeadingSpace(n)
	assert.Equal(t, "World", n.Data)

	blank := newText("   ")
	trimLeadingSpace(blank)
	assert.Equal(t, "   ", blank.Data)
}
