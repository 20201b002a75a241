package richedit

import (
	"strings"

	"golang.org/x/net/html"
)

// RemoveSelectedMarkup deletes the selected content of the active range and
// collapses the range where the content was.
func (e *Editor) RemoveSelectedMarkup() {
	rng := e.sel.Range()
	if rng == nil || rng.Collapsed() {
		return
	}

	tree := e.sel.SelectionTree(rng)
	root := rng.CommonAncestorContainer
	if root == nil {
		e.log.Warn("selection has no common ancestor, nothing removed")
		return
	}

	caret := &Range{LimitObject: rng.LimitObject}
	e.removeFromSelectionTree(tree, caret)
	if caret.StartContainer == nil {
		caret.collapseAt(root, 0)
	}

	e.dom.DoCleanup(CleanupOptions{Merge: true, RemoveEmpty: true}, caret, root)
	e.fillUpEmptied(root)

	e.sel.SetRange(caret)
	e.sel.CorrectRange(caret)
	e.sel.Update(caret, nil)
	e.sel.Select(caret)
}

// fillUpEmptied gives every split object under n, n included, that was
// left without children a fill-up.
func (e *Editor) fillUpEmptied(n *html.Node) {
	if !isElement(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.fillUpEmptied(c)
	}
	if n.FirstChild == nil && e.dom.IsSplitObject(n) {
		e.fillUp(n)
	}
}

// removeFromSelectionTree removes the selected parts of one tree level. The
// first position it can determine becomes the caret.
func (e *Editor) removeFromSelectionTree(tree SelectionTree, caret *Range) {
	var firstPartial *html.Node

	for _, el := range tree {
		switch el.Selection {
		case SelectionPartial:
			n := el.DomObj
			if isText(n) {
				n.Data = runeSlice(n.Data, 0, el.StartOffset) + runeSlice(n.Data, el.EndOffset, textLen(n))
				if caret.StartContainer == nil {
					caret.collapseAt(n, el.StartOffset)
				}
				continue
			}

			e.removeFromSelectionTree(el.Children, caret)
			switch {
			case firstPartial == nil:
				firstPartial = n
			case firstPartial.Data == n.Data:
				// <b>a[b</b>...<b>c]d</b> leaves two adjacent wrappers
				mergeElementKeepingRange(caret, firstPartial, n)
			}

		case SelectionFull:
			n := el.DomObj
			parent, idx := n.Parent, indexInParent(n)
			if caret.StartContainer == nil {
				next := e.dom.SearchAdjacentTextNode(parent, idx+1, false, SearchOptions{StopAtBlocks: true, Limit: e.limit})
				if next != nil {
					caret.collapseAt(next, 0)
				} else {
					caret.collapseAt(parent, idx)
				}
			} else if contains(n, caret.StartContainer) {
				caret.collapseAt(parent, idx)
			}
			detach(n)
		}
	}
}

// GetSelectedText returns the text of the active selection. The second
// result is false when nothing is selected.
func (e *Editor) GetSelectedText() (string, bool) {
	nodes, ok := e.selectedFragment()
	if !ok {
		return "", false
	}
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(textContent(n))
	}
	return sb.String(), true
}

// GetSelectedMarkup returns the selection as markup. Partially selected
// elements are rendered with only their selected content.
func (e *Editor) GetSelectedMarkup() (string, bool) {
	nodes, ok := e.selectedFragment()
	if !ok {
		return "", false
	}
	var sb strings.Builder
	for _, n := range nodes {
		s, err := RenderNode(n)
		if err != nil {
			e.log.WithError(err).Error("failed to render selection")
			return "", false
		}
		sb.WriteString(s)
	}
	return sb.String(), true
}

func (e *Editor) selectedFragment() ([]*html.Node, bool) {
	rng := e.sel.Range()
	if rng == nil || rng.Collapsed() {
		return nil, false
	}
	return copySelectionTree(e.sel.SelectionTree(rng)), true
}

// copySelectionTree builds detached copies of the selected content.
func copySelectionTree(tree SelectionTree) []*html.Node {
	var nodes []*html.Node
	for _, el := range tree {
		switch el.Selection {
		case SelectionPartial:
			if isText(el.DomObj) {
				nodes = append(nodes, newText(runeSlice(el.DomObj.Data, el.StartOffset, el.EndOffset)))
				continue
			}
			clone := cloneNode(el.DomObj, false)
			for _, c := range copySelectionTree(el.Children) {
				clone.AppendChild(c)
			}
			nodes = append(nodes, clone)
		case SelectionFull:
			nodes = append(nodes, cloneNode(el.DomObj, true))
		}
	}
	return nodes
}
