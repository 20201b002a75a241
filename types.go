package richedit

import "golang.org/x/net/html"

// NodePath represents the traversal steps from a root to a target node.
// Example: [0, 1, 3] means root -> child[0] -> child[1] -> child[3]
type NodePath []int

// SelectionState describes how much of a node a range covers.
type SelectionState string

const (
	SelectionNone      SelectionState = "none"      // Not touched by the range
	SelectionCollapsed SelectionState = "collapsed" // Caret marker between two siblings, no node
	SelectionPartial   SelectionState = "partial"   // Part of the node (or a caret inside it)
	SelectionFull      SelectionState = "full"      // The whole node and its subtree
)

// SelectionTreeEntry mirrors one child of the selection tree's root.
type SelectionTreeEntry struct {
	DomObj    *html.Node // nil for collapsed markers
	Selection SelectionState
	// StartOffset and EndOffset are rune offsets, only meaningful for
	// partially selected text nodes.
	StartOffset int
	EndOffset   int
	// Children is set for partially selected elements.
	Children SelectionTree
}

// SelectionTree mirrors the children of a root node annotated with their
// selection state. Entries are in child order; collapsed markers sit between
// the entries of the nodes they separate.
type SelectionTree []*SelectionTreeEntry

// nodeCount returns the number of entries that mirror an actual node.
func (t SelectionTree) nodeCount() int {
	count := 0
	for _, el := range t {
		if el.DomObj != nil {
			count++
		}
	}
	return count
}

// Range is the editing range the algorithms operate on. Containers are nodes
// of the document tree; offsets are rune offsets for text containers and
// child indices for elements.
type Range struct {
	StartContainer *html.Node
	StartOffset    int
	EndContainer   *html.Node
	EndOffset      int

	// CommonAncestorContainer is the root the selection tree is computed for.
	CommonAncestorContainer *html.Node
	// SplitObject is the nearest ancestor block that Enter may split.
	SplitObject *html.Node
	// LimitObject is the editable root. Nothing outside it is touched.
	LimitObject *html.Node
	// MarkupEffectiveAtStart lists the elements enclosing the start point,
	// innermost first, up to but excluding LimitObject.
	MarkupEffectiveAtStart []*html.Node
}

// NewCaret returns a collapsed range at container/offset inside limit.
func NewCaret(container *html.Node, offset int, limit *html.Node) *Range {
	return &Range{
		StartContainer: container,
		StartOffset:    offset,
		EndContainer:   container,
		EndOffset:      offset,
		LimitObject:    limit,
	}
}

// Collapsed reports whether start and end are the same point.
func (r *Range) Collapsed() bool {
	return r.StartContainer == r.EndContainer && r.StartOffset == r.EndOffset
}

// collapseAt moves both boundary points to container/offset.
func (r *Range) collapseAt(container *html.Node, offset int) {
	r.StartContainer, r.StartOffset = container, offset
	r.EndContainer, r.EndOffset = container, offset
}

// remap rewrites both boundary points through f.
func (r *Range) remap(f func(container *html.Node, offset int) (*html.Node, int)) {
	if r == nil {
		return
	}
	r.StartContainer, r.StartOffset = f(r.StartContainer, r.StartOffset)
	r.EndContainer, r.EndOffset = f(r.EndContainer, r.EndOffset)
}
