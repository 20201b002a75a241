package richedit

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// splitPass collects the containers a split emptied. They are removed once
// the walk is done.
type splitPass struct {
	pending []*html.Node
}

func (p *splitPass) prepareForRemoval(n *html.Node) {
	emptyNode(n)
	p.pending = append(p.pending, n)
}

// SplitRangeObject splits the block holding the caret in two, the way Enter
// starts a new paragraph.
func (e *Editor) SplitRangeObject() {
	rng := e.sel.Range()
	if rng == nil {
		e.log.Warn("split without an active range")
		return
	}
	e.splitRangeObject(rng)
}

func (e *Editor) splitRangeObject(rng *Range) {
	split := rng.SplitObject
	if split == nil {
		e.log.Warn("no split object at the caret, nothing to split")
		return
	}

	// The tree has to be computed before the follow-up is built, both must
	// see the same children.
	e.sel.Update(rng, split)
	tree := e.sel.SelectionTree(rng)
	if len(tree) == 0 {
		e.log.WithField("tag", split.Data).Error("cannot split due to an empty selection tree")
		return
	}
	followUp := e.followUpContainer(rng)

	pass := &splitPass{}
	e.splitHelper(tree, followUp, pass)
	e.cleanupSplit(split, followUp, pass)

	anchor := e.insertAfterObject(rng, followUp)
	insertAfter(anchor, followUp)

	if tagAtom(split) == atom.Li && tagAtom(followUp) != atom.Li && e.dom.SameStructure(split, newElement(followUp.Data)) {
		detach(split)
	}

	switch {
	case firstTextNode(followUp) != nil:
		rng.collapseAt(firstTextNode(followUp), 0)
	case len(e.ephemeralBreaks(followUp)) > 0:
		rng.collapseAt(e.ephemeralBreaks(followUp)[0].Parent, 0)
	default:
		rng.collapseAt(followUp.Parent, indexInParent(followUp))
	}
	e.sel.Update(rng, nil)
	e.sel.Select(rng)
}

// splitHelper walks tree and the children of followUp in lock step. Content
// before the caret stays in the original, content after it moves to the
// follow-up, and text at the caret is divided between both.
func (e *Editor) splitHelper(tree SelectionTree, followUp *html.Node, pass *splitPass) {
	mirror := childNodes(followUp)
	if len(mirror) != tree.nodeCount() {
		mirror = withoutWhitespaceText(mirror)
	}
	if len(mirror) != tree.nodeCount() {
		e.log.WithFields(logrus.Fields{
			"entries": tree.nodeCount(),
			"mirror":  len(mirror),
			"tag":     followUp.Data,
		}).Debug("follow-up does not mirror the split level, skipping walk")
		return
	}

	startMoving := false
	m := 0
	for i, el := range tree {
		if el.DomObj == nil {
			// caret between two children
			startMoving = true
			continue
		}
		twin := mirror[m]
		m++

		atEnd := isText(el.DomObj) && i == len(tree)-1 &&
			el.Selection != SelectionNone && el.StartOffset == textLen(el.DomObj)

		switch {
		case (el.Selection == SelectionNone && !startMoving) || atEnd:
			detach(twin)
			if !e.hasVisibleContent(followUp) {
				if e.dom.IsBlockLevel(followUp) {
					e.fillUp(followUp)
				} else {
					pass.prepareForRemoval(followUp)
				}
			}

		case el.Selection != SelectionNone:
			startMoving = true
			if isText(el.DomObj) && isText(twin) {
				e.splitText(el, twin, len(tree), len(mirror), followUp, pass)
			}
			if len(el.Children) > 0 {
				e.splitHelper(el.Children, twin, pass)
			}

		default:
			detach(el.DomObj)
		}
	}
}

// splitText divides the text at the caret: the head stays in the original,
// the tail goes to twin.
func (e *Editor) splitText(el *SelectionTreeEntry, twin *html.Node, treeLen, mirrorLen int, followUp *html.Node, pass *splitPass) {
	t := el.DomObj
	complete, n := t.Data, textLen(t)

	switch {
	case el.StartOffset > 0:
		t.Data = runeSlice(complete, 0, el.StartOffset)
	case treeLen > 1:
		detach(t)
	default:
		parent := t.Parent
		if e.dom.IsBlockLevel(parent) {
			e.fillUp(parent)
		} else {
			detach(parent)
		}
	}

	switch {
	case n-el.StartOffset > 0:
		twin.Data = runeSlice(complete, el.StartOffset, n)
	case mirrorLen > 1:
		detach(twin)
	case e.dom.IsBlockLevel(followUp):
		e.fillUp(followUp)
	default:
		pass.prepareForRemoval(followUp)
	}
}

// cleanupSplit leaves at most one ephemeral break in each half, drops the
// containers emptied by the walk and fills empty halves.
func (e *Editor) cleanupSplit(split, followUp *html.Node, pass *splitPass) {
	e.keepFirstEphemeral(split)
	e.keepFirstEphemeral(followUp)

	for _, n := range pass.pending {
		if n != followUp {
			detach(n)
		}
	}

	for _, n := range []*html.Node{split, followUp} {
		if n.FirstChild == nil && e.dom.IsSplitObject(n) {
			e.fillUp(n)
		}
	}
}

// insertAfterObject finds the element the follow-up is inserted after: the
// split object or the first of its ancestors whose parent may contain the
// follow-up. A paragraph leaving a list lands after the list.
func (e *Editor) insertAfterObject(rng *Range, followUp *html.Node) *html.Node {
	passed := false
	for _, el := range rng.MarkupEffectiveAtStart {
		if el == rng.SplitObject {
			passed = true
		}
		if !passed || el.Parent == nil {
			continue
		}
		if e.dom.CanWrap(el.Parent.Data, followUp.Data) {
			return el
		}
	}
	e.log.WithFields(logrus.Fields{
		"split":    rng.SplitObject.Data,
		"followUp": followUp.Data,
	}).Warn("no legal place for the follow-up, inserting after the split object")
	return rng.SplitObject
}

// hasVisibleContent reports whether n holds text or a void element other
// than an ephemeral break.
func (e *Editor) hasVisibleContent(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case isText(c):
			if c.Data != "" {
				return true
			}
		case e.isEphemeral(c):
		case voidElements[tagAtom(c)]:
			return true
		case e.hasVisibleContent(c):
			return true
		}
	}
	return false
}

func withoutWhitespaceText(nodes []*html.Node) []*html.Node {
	var kept []*html.Node
	for _, n := range nodes {
		if !isWhitespaceText(n) {
			kept = append(kept, n)
		}
	}
	return kept
}
