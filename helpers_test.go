package richedit

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// newTestEditor parses markup as the editable body and returns an editor
// logging into a test hook.
func newTestEditor(t *testing.T, markup string, opts ...Option) (*Editor, *logtest.Hook) {
	t.Helper()
	body, err := ParseEditable(markup)
	require.NoError(t, err)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return New(body, append([]Option{WithLogger(logger)}, opts...)...), hook
}

// nodeAt returns the node at path below the editable.
func nodeAt(t *testing.T, e *Editor, path ...int) *html.Node {
	t.Helper()
	n, err := GetNode(e.Editable(), NodePath(path))
	require.NoError(t, err)
	return n
}

func contents(t *testing.T, e *Editor) string {
	t.Helper()
	s, err := e.Contents()
	require.NoError(t, err)
	return s
}

func rawContents(t *testing.T, e *Editor) string {
	t.Helper()
	s, err := e.RawContents()
	require.NoError(t, err)
	return s
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	s, err := RenderNode(n)
	require.NoError(t, err)
	return s
}

// pointAt maps a character offset in the text of root to a text node and
// an offset in it. Offsets on a boundary resolve to the end of the earlier
// node unless preferNext is set.
func pointAt(t *testing.T, root *html.Node, k int, preferNext bool) (*html.Node, int) {
	t.Helper()
	nodes := textNodes(root)
	pos := 0
	for i, n := range nodes {
		l := textLen(n)
		last := i == len(nodes)-1
		if k < pos+l || (k == pos+l && (!preferNext || last)) {
			return n, k - pos
		}
		pos += l
	}
	t.Fatalf("offset %d is beyond the text of <%s>", k, root.Data)
	return nil, 0
}

func enter(shift bool) KeyEvent {
	return KeyEvent{Type: EventKeyDown, KeyCode: KeyEnter, Shift: shift}
}

func hasMessage(hook *logtest.Hook, level logrus.Level, substr string) bool {
	for _, entry := range hook.AllEntries() {
		if entry.Level == level && strings.Contains(entry.Message, substr) {
			return true
		}
	}
	return false
}
