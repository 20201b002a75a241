package richedit

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InsertBreak inserts a <br> at the caret of the active range. A selection
// is deleted first.
func (e *Editor) InsertBreak() {
	rng := e.sel.Range()
	if rng == nil {
		e.log.Warn("insert break without an active range")
		return
	}
	if !rng.Collapsed() {
		e.RemoveSelectedMarkup()
		rng = e.sel.Range()
	}

	br := newElement("br")
	if !e.dom.InsertIntoDOM(br, rng, e.limit) {
		e.log.Warn("no place for a break at the caret")
		return
	}

	next := e.dom.SearchAdjacentTextNode(br.Parent, indexInParent(br)+1, false, SearchOptions{StopAtBlocks: true, Limit: e.limit})
	if next != nil {
		trimLeadingSpace(next)
	}

	rng.collapseAt(br.Parent, indexInParent(br)+1)
	e.sel.CorrectRange(rng)
	e.sel.Update(rng, nil)
	e.sel.Select(rng)
}

// InsertHTMLBreak inserts markup, a single <br> by default, at the first
// selected entry of tree and moves the range behind it.
func (e *Editor) InsertHTMLBreak(tree SelectionTree, rng *Range, markup ...*html.Node) {
	if len(tree) == 0 {
		return
	}
	if len(markup) == 0 {
		markup = []*html.Node{newElement("br")}
	}

	for i, el := range tree {
		if el.Selection == SelectionNone {
			continue
		}
		switch {
		case el.Selection == SelectionCollapsed:
			e.breakAtMarker(tree, i, rng, markup)
		case isText(el.DomObj):
			e.breakInText(el, rng, markup)
		case isElement(el.DomObj):
			e.breakAfterElement(el, rng, markup)
		}
		break
	}
	e.sel.Select(rng)
}

func (e *Editor) breakAtMarker(tree SelectionTree, i int, rng *Range, markup []*html.Node) {
	switch {
	case i > 0 && tree[i-1].DomObj != nil:
		prev := tree[i-1].DomObj
		insertNodesBefore(prev.Parent, prev.NextSibling, markup)
	case i+1 < len(tree) && tree[i+1].DomObj != nil:
		next := tree[i+1].DomObj
		insertNodesBefore(next.Parent, next, markup)
	default:
		insertNodesBefore(rng.CommonAncestorContainer, nil, markup)
	}

	last := markup[len(markup)-1]
	rng.collapseAt(last.Parent, indexInParent(last)+1)
	e.sel.CorrectRange(rng)
}

func (e *Editor) breakInText(el *SelectionTreeEntry, rng *Range, markup []*html.Node) {
	t := el.DomObj
	parent := t.Parent

	// a text directly followed by a block like <p> needs its own break, or
	// the boundary does not render
	if next := t.NextSibling; isElement(next) && replacingElements[tagAtom(next)] {
		insertAfter(t, newElement("br"))
	}

	if e.cfg.NeedEndingBreak {
		if block := endingBlock(t, rng.LimitObject, e.dom); block != nil {
			for c := block.FirstChild; c != nil; {
				next := c.NextSibling
				if e.isEphemeral(c) {
					block.RemoveChild(c)
				}
				c = next
			}
			block.AppendChild(e.newEphemeralBreak())
		}
	}

	insertNodesBefore(parent, splitTextAt(t, el.StartOffset), markup)

	last := markup[len(markup)-1]
	rng.collapseAt(last.Parent, indexInParent(last)+1)
	e.sel.CorrectRange(rng)
}

func (e *Editor) breakAfterElement(el *SelectionTreeEntry, rng *Range, markup []*html.Node) {
	n := el.DomObj
	if n.Parent != nil && len(e.ephemeralBreaks(n.Parent)) == 0 {
		e.purgeEphemeral(rng.LimitObject)
		if fill := e.fillUpElement(); fill != nil && rng.CommonAncestorContainer != nil {
			rng.CommonAncestorContainer.AppendChild(fill)
		}
	}
	insertNodesBefore(n.Parent, n.NextSibling, markup)

	last := markup[len(markup)-1]
	rng.collapseAt(last.Parent, indexInParent(last)+1)
	e.sel.Update(rng, nil)
}

// endingBlock returns the block t ends, or nil when content follows t
// before the block closes or the walk reaches limit.
func endingBlock(t, limit *html.Node, dom DOMUtil) *html.Node {
	for n := t; n != nil; {
		if n.NextSibling != nil {
			return nil
		}
		n = n.Parent
		switch {
		case n == nil:
			return nil
		case dom.IsBlockLevel(n):
			return n
		case n == limit:
			return nil
		}
	}
	return nil
}

// InsertHTMLCode inserts markup at the caret. The markup is parsed in the
// context of the element holding the caret.
func (e *Editor) InsertHTMLCode(markup string) error {
	rng := e.sel.Range()
	if rng == nil {
		return ErrNoRange
	}
	if !rng.Collapsed() {
		e.RemoveSelectedMarkup()
		rng = e.sel.Range()
	}

	context := rng.StartContainer
	if isText(context) {
		context = context.Parent
	}
	if tagAtom(context) == atom.Br {
		context = context.Parent
	}
	nodes, err := ParseFragment(markup, context)
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return nil
	}

	e.sel.Update(rng, nil)
	e.InsertHTMLBreak(e.sel.SelectionTree(rng), rng, nodes...)
	return nil
}
