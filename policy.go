package richedit

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blockLevelElements = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Blockquote: true,
	atom.Body:       true,
	atom.Dd:         true,
	atom.Div:        true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Fieldset:   true,
	atom.Figure:     true,
	atom.Footer:     true,
	atom.Form:       true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Header:     true,
	atom.Hr:         true,
	atom.Li:         true,
	atom.Nav:        true,
	atom.Ol:         true,
	atom.P:          true,
	atom.Pre:        true,
	atom.Section:    true,
	atom.Table:      true,
	atom.Tbody:      true,
	atom.Td:         true,
	atom.Tfoot:      true,
	atom.Th:         true,
	atom.Thead:      true,
	atom.Tr:         true,
	atom.Ul:         true,
}

// splitObjects are the blocks Enter divides in two.
var splitObjects = map[atom.Atom]bool{
	atom.Address: true,
	atom.Dd:      true,
	atom.Dt:      true,
	atom.H1:      true,
	atom.H2:      true,
	atom.H3:      true,
	atom.H4:      true,
	atom.H5:      true,
	atom.H6:      true,
	atom.Li:      true,
	atom.P:       true,
	atom.Pre:     true,
}

// replacingElements are blocks that need a break between them and a
// preceding text node to render the boundary.
var replacingElements = map[atom.Atom]bool{
	atom.Blockquote: true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.P:          true,
	atom.Pre:        true,
}

var voidElements = map[atom.Atom]bool{
	atom.Br:    true,
	atom.Hr:    true,
	atom.Img:   true,
	atom.Input: true,
	atom.Embed: true,
	atom.Wbr:   true,
}

// nestingRules lists the only children some containers accept.
var nestingRules = map[atom.Atom]map[atom.Atom]bool{
	atom.Ul:    {atom.Li: true},
	atom.Ol:    {atom.Li: true},
	atom.Dl:    {atom.Dt: true, atom.Dd: true, atom.Div: true},
	atom.Table: {atom.Caption: true, atom.Colgroup: true, atom.Thead: true, atom.Tbody: true, atom.Tfoot: true, atom.Tr: true},
	atom.Thead: {atom.Tr: true},
	atom.Tbody: {atom.Tr: true},
	atom.Tfoot: {atom.Tr: true},
	atom.Tr:    {atom.Td: true, atom.Th: true},
}

// phrasingOnly containers accept inline content only.
var phrasingOnly = map[atom.Atom]bool{
	atom.A:       true,
	atom.Abbr:    true,
	atom.Address: true,
	atom.B:       true,
	atom.Cite:    true,
	atom.Code:    true,
	atom.Dt:      true,
	atom.Em:      true,
	atom.H1:      true,
	atom.H2:      true,
	atom.H3:      true,
	atom.H4:      true,
	atom.H5:      true,
	atom.H6:      true,
	atom.I:       true,
	atom.Label:   true,
	atom.P:       true,
	atom.Pre:     true,
	atom.Q:       true,
	atom.S:       true,
	atom.Small:   true,
	atom.Span:    true,
	atom.Strike:  true,
	atom.Strong:  true,
	atom.Sub:     true,
	atom.Sup:     true,
	atom.U:       true,
}

func lookupTag(tag string) atom.Atom {
	return atom.Lookup([]byte(strings.ToLower(tag)))
}

// CanWrap reports whether an element named parentTag may directly contain an
// element named childTag. Unknown parents accept anything.
func CanWrap(parentTag, childTag string) bool {
	parent, child := lookupTag(parentTag), lookupTag(childTag)
	if allowed, ok := nestingRules[parent]; ok {
		return allowed[child]
	}
	if phrasingOnly[parent] {
		return !blockLevelElements[child]
	}
	return true
}

func isBlockLevel(n *html.Node) bool {
	return isElement(n) && blockLevelElements[tagAtom(n)]
}

func isSplitObject(n *html.Node) bool {
	return isElement(n) && splitObjects[tagAtom(n)]
}

func isHeading(a atom.Atom) bool {
	switch a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// structureSignature describes the visible structure of n's children:
// trimmed text and element tags, skipping whitespace and ephemeral breaks.
func structureSignature(n *html.Node, ephemeralClass string) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if t := strings.TrimSpace(c.Data); t != "" {
				sb.WriteString(t)
			}
		case html.ElementNode:
			if tagAtom(c) == atom.Br && hasClass(c, ephemeralClass) {
				continue
			}
			sb.WriteString("<" + c.Data + ">")
			sb.WriteString(structureSignature(c, ephemeralClass))
			sb.WriteString("</" + c.Data + ">")
		}
	}
	return sb.String()
}
