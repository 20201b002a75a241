package richedit

import "golang.org/x/net/html"

// Selection is the selection service the editing operations report to.
// It owns the active range and derives selection trees from it.
type Selection interface {
	Range() *Range
	SetRange(r *Range)
	// SelectionTree returns the tree for r's CommonAncestorContainer.
	SelectionTree(r *Range) SelectionTree
	// Update recomputes the derived fields of r after a mutation. A non-nil
	// root becomes the new CommonAncestorContainer.
	Update(r *Range, root *html.Node)
	// CorrectRange moves element-level boundary points into adjacent text.
	CorrectRange(r *Range)
	ClearCaches(r *Range)
	// Select applies r as the live caret.
	Select(r *Range)
}

// DocumentSelection is the default Selection for a single editable.
type DocumentSelection struct {
	limit    *html.Node
	dom      DOMUtil
	current  *Range
	onSelect func(*Range)
	cache    map[*html.Node]cachedTree
}

type cachedTree struct {
	start, end             *html.Node
	startOffset, endOffset int
	tree                   SelectionTree
}

// NewDocumentSelection creates a selection service for the editable limit.
func NewDocumentSelection(limit *html.Node, dom DOMUtil) *DocumentSelection {
	return &DocumentSelection{
		limit: limit,
		dom:   dom,
		cache: make(map[*html.Node]cachedTree),
	}
}

// OnSelect registers a callback invoked whenever a range is selected.
func (s *DocumentSelection) OnSelect(fn func(*Range)) {
	s.onSelect = fn
}

func (s *DocumentSelection) Range() *Range {
	return s.current
}

func (s *DocumentSelection) SetRange(r *Range) {
	if r != nil && r.LimitObject == nil {
		r.LimitObject = s.limit
	}
	s.current = r
	s.cache = make(map[*html.Node]cachedTree)
}

func (s *DocumentSelection) Select(r *Range) {
	s.current = r
	if s.onSelect != nil {
		s.onSelect(r)
	}
}

func (s *DocumentSelection) ClearCaches(r *Range) {
	s.cache = make(map[*html.Node]cachedTree)
}

func (s *DocumentSelection) Update(r *Range, root *html.Node) {
	if r.LimitObject == nil {
		r.LimitObject = s.limit
	}
	if root != nil {
		r.CommonAncestorContainer = root
	} else {
		r.CommonAncestorContainer = commonAncestor(r.StartContainer, r.EndContainer)
	}

	r.MarkupEffectiveAtStart = nil
	r.SplitObject = nil
	n := r.StartContainer
	if isText(n) {
		n = n.Parent
	}
	for ; n != nil && n != r.LimitObject; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		r.MarkupEffectiveAtStart = append(r.MarkupEffectiveAtStart, n)
		if r.SplitObject == nil && s.dom.IsSplitObject(n) {
			r.SplitObject = n
		}
	}
	s.ClearCaches(r)
}

func (s *DocumentSelection) CorrectRange(r *Range) {
	if r.StartContainer == nil {
		return
	}
	if r.Collapsed() {
		r.collapseAt(intoText(r.StartContainer, r.StartOffset, true))
		return
	}
	r.StartContainer, r.StartOffset = intoText(r.StartContainer, r.StartOffset, true)
	r.EndContainer, r.EndOffset = intoText(r.EndContainer, r.EndOffset, false)
}

// intoText maps an element-level point onto a neighbouring text node,
// preferring the following one when preferNext is set.
func intoText(c *html.Node, o int, preferNext bool) (*html.Node, int) {
	if c.Type == html.TextNode {
		if o > textLen(c) {
			o = textLen(c)
		}
		if o < 0 {
			o = 0
		}
		return c, o
	}
	if n := childCount(c); o > n {
		o = n
	}
	next, prev := childAt(c, o), childAt(c, o-1)
	if preferNext && isText(next) {
		return next, 0
	}
	if isText(prev) {
		return prev, textLen(prev)
	}
	if isText(next) {
		return next, 0
	}
	return c, o
}

func (s *DocumentSelection) SelectionTree(r *Range) SelectionTree {
	if r.CommonAncestorContainer == nil {
		s.Update(r, nil)
	}
	root := r.CommonAncestorContainer
	if root == nil {
		return nil
	}
	if c, ok := s.cache[root]; ok && c.start == r.StartContainer && c.startOffset == r.StartOffset &&
		c.end == r.EndContainer && c.endOffset == r.EndOffset {
		return c.tree
	}
	tree := buildSelectionTree(root, r)
	s.cache[root] = cachedTree{
		start:       r.StartContainer,
		startOffset: r.StartOffset,
		end:         r.EndContainer,
		endOffset:   r.EndOffset,
		tree:        tree,
	}
	return tree
}

func buildSelectionTree(root *html.Node, r *Range) SelectionTree {
	var tree SelectionTree
	collapsed := r.Collapsed()
	i := 0
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if collapsed && r.StartContainer == root && r.StartOffset == i {
			tree = append(tree, &SelectionTreeEntry{Selection: SelectionCollapsed})
		}
		tree = append(tree, selectionEntry(root, c, i, r))
		i++
	}
	if collapsed && r.StartContainer == root && r.StartOffset >= i {
		tree = append(tree, &SelectionTreeEntry{Selection: SelectionCollapsed})
	}
	return tree
}

func selectionEntry(root, c *html.Node, i int, r *Range) *SelectionTreeEntry {
	el := &SelectionTreeEntry{DomObj: c, Selection: SelectionNone}

	if r.Collapsed() {
		switch {
		case c.Type == html.TextNode && r.StartContainer == c:
			el.Selection = SelectionPartial
			el.StartOffset, el.EndOffset = r.StartOffset, r.StartOffset
		case c.Type == html.ElementNode && contains(c, r.StartContainer):
			el.Selection = SelectionPartial
			el.Children = buildSelectionTree(c, r)
		}
		return el
	}

	if c.Type == html.TextNode {
		start, end := 0, textLen(c)
		switch {
		case r.StartContainer == c:
			start = r.StartOffset
		case comparePoints(r.StartContainer, r.StartOffset, root, i+1) >= 0:
			return el
		}
		switch {
		case r.EndContainer == c:
			end = r.EndOffset
		case comparePoints(r.EndContainer, r.EndOffset, root, i) <= 0:
			return el
		}
		switch {
		case start >= end:
		case start == 0 && end == textLen(c):
			el.Selection = SelectionFull
		default:
			el.Selection = SelectionPartial
			el.StartOffset, el.EndOffset = start, end
		}
		return el
	}

	switch {
	case comparePoints(r.StartContainer, r.StartOffset, root, i) <= 0 &&
		comparePoints(r.EndContainer, r.EndOffset, root, i+1) >= 0:
		el.Selection = SelectionFull
	case comparePoints(r.EndContainer, r.EndOffset, root, i) <= 0,
		comparePoints(r.StartContainer, r.StartOffset, root, i+1) >= 0:
	default:
		el.Selection = SelectionPartial
		el.Children = buildSelectionTree(c, r)
	}
	return el
}

// commonAncestor returns the deepest element containing both nodes.
func commonAncestor(a, b *html.Node) *html.Node {
	if a == nil || b == nil {
		return nil
	}
	if isText(a) {
		a = a.Parent
	}
	for n := a; n != nil; n = n.Parent {
		if contains(n, b) {
			return n
		}
	}
	return nil
}

// comparePoints orders two boundary points: -1 when (a, offsetA) comes
// before (b, offsetB), 1 when after and 0 when they are equal.
func comparePoints(a *html.Node, offsetA int, b *html.Node, offsetB int) int {
	if a == b {
		switch {
		case offsetA < offsetB:
			return -1
		case offsetA > offsetB:
			return 1
		}
		return 0
	}

	if isAncestor(a, b) {
		child := b
		for child.Parent != a {
			child = child.Parent
		}
		if indexInParent(child) < offsetA {
			return 1
		}
		return -1
	}

	if isAncestor(b, a) {
		child := a
		for child.Parent != b {
			child = child.Parent
		}
		if indexInParent(child) < offsetB {
			return -1
		}
		return 1
	}

	return compareTreeOrder(a, b)
}

// compareTreeOrder compares two nodes neither of which contains the other.
func compareTreeOrder(a, b *html.Node) int {
	var pathA, pathB []*html.Node
	for n := a; n != nil; n = n.Parent {
		pathA = append([]*html.Node{n}, pathA...)
	}
	for n := b; n != nil; n = n.Parent {
		pathB = append([]*html.Node{n}, pathB...)
	}

	for i := 0; i < len(pathA) && i < len(pathB); i++ {
		if pathA[i] == pathB[i] {
			continue
		}
		if i == 0 {
			return 0 // different trees
		}
		for c := pathA[i-1].FirstChild; c != nil; c = c.NextSibling {
			switch c {
			case pathA[i]:
				return -1
			case pathB[i]:
				return 1
			}
		}
		return 0
	}
	return 0
}
