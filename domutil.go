package richedit

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DOMUtil holds the tree queries and normalization the editing algorithms
// build on.
type DOMUtil interface {
	// InsertIntoDOM inserts node at the start of rng, climbing out of
	// containers that cannot hold it but never above limit.
	InsertIntoDOM(node *html.Node, rng *Range, limit *html.Node) bool
	// SearchAdjacentTextNode looks for the nearest text node starting at
	// child index of parent, walking backward or forward.
	SearchAdjacentTextNode(parent *html.Node, index int, backward bool, opts SearchOptions) *html.Node
	IsBlockLevel(n *html.Node) bool
	IsSplitObject(n *html.Node) bool
	// DoCleanup normalizes the subtree under root and keeps rng pointing at
	// the same logical position.
	DoCleanup(opts CleanupOptions, rng *Range, root *html.Node)
	CanWrap(parentTag, childTag string) bool
	// SameStructure reports whether a and b hold interchangeable content.
	SameStructure(a, b *html.Node) bool
}

// SearchOptions controls SearchAdjacentTextNode.
type SearchOptions struct {
	StopAtBlocks bool       // do not cross block-level boundaries
	Limit        *html.Node // never climb above this node
}

// CleanupOptions controls DoCleanup.
type CleanupOptions struct {
	Merge       bool // merge adjacent text nodes and equal inline siblings
	RemoveEmpty bool // drop empty non-block containers and empty text
}

// DefaultDOMUtil implements DOMUtil with the package's tag tables.
type DefaultDOMUtil struct {
	// EphemeralClass marks placeholder breaks, which do not count as
	// content when comparing structure.
	EphemeralClass string
}

func (u *DefaultDOMUtil) IsBlockLevel(n *html.Node) bool { return isBlockLevel(n) }

func (u *DefaultDOMUtil) IsSplitObject(n *html.Node) bool { return isSplitObject(n) }

func (u *DefaultDOMUtil) CanWrap(parentTag, childTag string) bool {
	return CanWrap(parentTag, childTag)
}

func (u *DefaultDOMUtil) SameStructure(a, b *html.Node) bool {
	return structureSignature(a, u.EphemeralClass) == structureSignature(b, u.EphemeralClass)
}

func (u *DefaultDOMUtil) InsertIntoDOM(node *html.Node, rng *Range, limit *html.Node) bool {
	container, offset := rng.StartContainer, rng.StartOffset
	if container == nil {
		return false
	}

	// Resolve the caret into a parent and the node to insert before.
	var parent, ref *html.Node
	if container.Type == html.TextNode {
		parent = container.Parent
		if parent == nil {
			return false
		}
		ref = splitTextAt(container, offset)
	} else {
		parent = container
		ref = childAt(container, offset)
	}

	// Climb until a parent accepts the node, inserting after the subtree
	// that holds the caret.
	for !u.CanWrap(parent.Data, node.Data) {
		if parent == limit || parent.Parent == nil {
			return false
		}
		ref = parent.NextSibling
		parent = parent.Parent
	}
	detach(node)
	parent.InsertBefore(node, ref)
	return true
}

func (u *DefaultDOMUtil) SearchAdjacentTextNode(parent *html.Node, index int, backward bool, opts SearchOptions) *html.Node {
	for parent != nil {
		children := childNodes(parent)
		step := 1
		if backward {
			step = -1
		}
		for i := index; i >= 0 && i < len(children); i += step {
			c := children[i]
			if c.Type == html.TextNode {
				return c
			}
			if c.Type != html.ElementNode {
				continue
			}
			if opts.StopAtBlocks && u.IsBlockLevel(c) {
				return nil
			}
			if t := u.edgeTextNode(c, backward, opts.StopAtBlocks); t != nil {
				return t
			}
		}

		if parent == opts.Limit || (opts.StopAtBlocks && u.IsBlockLevel(parent)) || parent.Parent == nil {
			return nil
		}
		index = indexInParent(parent) + step
		parent = parent.Parent
	}
	return nil
}

// edgeTextNode returns the first (or last) text node inside n.
func (u *DefaultDOMUtil) edgeTextNode(n *html.Node, backward, stopAtBlocks bool) *html.Node {
	c := n.FirstChild
	if backward {
		c = n.LastChild
	}
	for c != nil {
		switch {
		case c.Type == html.TextNode:
			return c
		case c.Type == html.ElementNode:
			if stopAtBlocks && u.IsBlockLevel(c) {
				return nil
			}
			if t := u.edgeTextNode(c, backward, stopAtBlocks); t != nil {
				return t
			}
		}
		if backward {
			c = c.PrevSibling
		} else {
			c = c.NextSibling
		}
	}
	return nil
}

func (u *DefaultDOMUtil) DoCleanup(opts CleanupOptions, rng *Range, root *html.Node) {
	if root == nil {
		return
	}
	u.cleanup(opts, rng, root)
}

func (u *DefaultDOMUtil) cleanup(opts CleanupOptions, rng *Range, n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			u.cleanup(opts, rng, c)
		}

		switch {
		case opts.RemoveEmpty && u.isDisposable(c):
			removeKeepingRange(rng, c)
		case opts.Merge && c.Type == html.TextNode && isText(c.PrevSibling):
			mergeTextKeepingRange(rng, c.PrevSibling, c)
		case opts.Merge && u.mergeable(c.PrevSibling, c):
			prev := c.PrevSibling
			mergeElementKeepingRange(rng, prev, c)
			// moved children may now touch text in prev
			u.cleanup(opts, rng, prev)
		}
		c = next
	}
}

// isDisposable reports nodes that carry nothing: empty text and empty
// inline containers.
func (u *DefaultDOMUtil) isDisposable(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return n.Data == ""
	case html.ElementNode:
		return n.FirstChild == nil && !u.IsBlockLevel(n) && !voidElements[tagAtom(n)]
	}
	return false
}

// mergeable reports adjacent inline elements with the same tag and
// attributes, like the two halves of <b>a</b><b>b</b>.
func (u *DefaultDOMUtil) mergeable(a, b *html.Node) bool {
	if !isElement(a) || !isElement(b) || a.Data != b.Data {
		return false
	}
	if u.IsBlockLevel(a) || voidElements[tagAtom(a)] || tagAtom(a) == atom.Br {
		return false
	}
	if len(a.Attr) != len(b.Attr) {
		return false
	}
	for _, attr := range a.Attr {
		if getAttr(b, attr.Key) != attr.Val {
			return false
		}
	}
	return true
}

// removeKeepingRange detaches n and moves boundary points that were inside
// it to its former position.
func removeKeepingRange(rng *Range, n *html.Node) {
	parent, idx := n.Parent, indexInParent(n)
	rng.remap(func(c *html.Node, o int) (*html.Node, int) {
		switch {
		case c != nil && contains(n, c):
			return parent, idx
		case c == parent && o > idx:
			return c, o - 1
		}
		return c, o
	})
	detach(n)
}

// mergeTextKeepingRange appends b's data to a and removes b.
func mergeTextKeepingRange(rng *Range, a, b *html.Node) {
	parent, idx, aLen := b.Parent, indexInParent(b), textLen(a)
	rng.remap(func(c *html.Node, o int) (*html.Node, int) {
		switch {
		case c == b:
			return a, aLen + o
		case c == parent && o == idx:
			return a, aLen
		case c == parent && o > idx:
			return c, o - 1
		}
		return c, o
	})
	a.Data += b.Data
	detach(b)
}

// mergeElementKeepingRange moves b's children into a and removes b.
func mergeElementKeepingRange(rng *Range, a, b *html.Node) {
	parent, idx, aCount := b.Parent, indexInParent(b), childCount(a)
	rng.remap(func(c *html.Node, o int) (*html.Node, int) {
		switch {
		case c == b:
			return a, aCount + o
		case c == parent && o == idx:
			return a, aCount
		case c == parent && o > idx:
			return c, o - 1
		}
		return c, o
	})
	for c := b.FirstChild; c != nil; c = b.FirstChild {
		b.RemoveChild(c)
		a.AppendChild(c)
	}
	detach(b)
}
