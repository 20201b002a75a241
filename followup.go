package richedit

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// followUpPolicy builds the container that receives the content after the
// caret when rng.SplitObject is split. A nil result falls back to a clone
// of the split object.
type followUpPolicy func(e *Editor, rng *Range) *html.Node

var followUpPolicies = map[atom.Atom]followUpPolicy{
	atom.H1: headingFollowUp,
	atom.H2: headingFollowUp,
	atom.H3: headingFollowUp,
	atom.H4: headingFollowUp,
	atom.H5: headingFollowUp,
	atom.H6: headingFollowUp,
	atom.Li: listItemFollowUp,
}

func (e *Editor) followUpContainer(rng *Range) *html.Node {
	if policy, ok := followUpPolicies[tagAtom(rng.SplitObject)]; ok {
		if n := policy(e, rng); n != nil {
			return n
		}
	}
	return cloneNode(rng.SplitObject, true)
}

// headingFollowUp continues a heading split at its very end with a
// paragraph instead of a second heading.
func headingFollowUp(e *Editor, rng *Range) *html.Node {
	texts := textNodes(rng.SplitObject)
	if len(texts) == 0 {
		return nil
	}
	last := texts[len(texts)-1]
	c, o := intoText(rng.StartContainer, rng.StartOffset, false)
	if isText(c) {
		if c != last || o != textLen(last) {
			return nil
		}
	} else if comparePoints(c, o, last, textLen(last)) < 0 {
		return nil
	}
	return paragraphWithContentOf(rng.SplitObject)
}

// listItemFollowUp leaves the list when Enter is hit in an empty item.
func listItemFollowUp(e *Editor, rng *Range) *html.Node {
	li := rng.SplitObject
	if e.isEphemeral(rng.StartContainer) {
		return paragraphWithContentOf(li)
	}
	if isLastItem(li) && strings.TrimSpace(textContent(li)) == "" {
		return newElement("p")
	}
	return nil
}

func paragraphWithContentOf(n *html.Node) *html.Node {
	p := newElement("p")
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.AppendChild(cloneNode(c, true))
	}
	return p
}

func isLastItem(n *html.Node) bool {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if !isWhitespaceText(s) {
			return false
		}
	}
	return true
}
