package richedit

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	ErrNotElement = errors.New("node is not an element")
	ErrDetached   = errors.New("node is not attached to a parent")
	ErrNoRange    = errors.New("no active range")
)

// ParseEditable parses a document and returns its body, which is used as the
// editable root. Parse always produces html/head/body, so fragments such as
// "<p>Hello</p>" end up as children of the body.
func ParseEditable(content string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse editable")
	}
	body := findElement(doc, atom.Body)
	if body == nil {
		return nil, errors.New("parsed document has no body")
	}
	return body, nil
}

// ParseFragment parses markup as it would be parsed inside context.
// A nil or non-element context parses in body context.
func ParseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	if context == nil || context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse fragment in <%s>", context.Data)
	}
	return nodes, nil
}

// RenderNode converts a node tree back to a string.
func RenderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", errors.Wrap(err, "failed to render node")
	}
	return buf.String(), nil
}

// RenderChildren renders the children of n, i.e. its inner markup.
func RenderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", errors.Wrap(err, "failed to render children")
		}
	}
	return buf.String(), nil
}

// GetNode traverses the tree using the provided path to find a specific node.
func GetNode(root *html.Node, path NodePath) (*html.Node, error) {
	current := root
	for i, index := range path {
		child := childAt(current, index)
		if child == nil {
			return nil, errors.Errorf("node not found at path %v (failed at index %d, step %d)", path, index, i)
		}
		current = child
	}
	return current, nil
}

// GetPath finds the path from root to the target node.
func GetPath(root, target *html.Node) (NodePath, error) {
	var path NodePath

	// Built backwards from target to root
	current := target
	for current != root {
		parent := current.Parent
		if parent == nil {
			return nil, errors.New("target node is not a descendant of root")
		}
		path = append(NodePath{indexInParent(current)}, path...)
		current = parent
	}
	return path, nil
}

// childAt finds the Nth child of a node.
// Note: html.Node's children are a linked list (FirstChild, NextSibling).
func childAt(parent *html.Node, index int) *html.Node {
	if index < 0 {
		return nil
	}
	count := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if count == index {
			return c
		}
		count++
	}
	return nil
}

// indexInParent returns the index of n within its parent, or -1 when
// n is detached.
func indexInParent(n *html.Node) int {
	if n.Parent == nil {
		return -1
	}
	count := 0
	for c := n.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c == n {
			return count
		}
		count++
	}
	return -1
}

func childNodes(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}

func childCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

func insertChildAt(parent, child *html.Node, index int) {
	// nil ref appends
	parent.InsertBefore(child, childAt(parent, index))
}

func insertAfter(ref, n *html.Node) {
	detach(n)
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

// splitTextAt prepares text node t for an insertion at rune offset and
// returns the node to insert before. A split in the middle leaves the
// tail in a new sibling.
func splitTextAt(t *html.Node, offset int) *html.Node {
	switch {
	case offset <= 0:
		return t
	case offset >= textLen(t):
		return t.NextSibling
	}
	tail := newText(runeSlice(t.Data, offset, textLen(t)))
	t.Data = runeSlice(t.Data, 0, offset)
	insertAfter(t, tail)
	return tail
}

func insertNodesBefore(parent, ref *html.Node, nodes []*html.Node) {
	for _, n := range nodes {
		detach(n)
		parent.InsertBefore(n, ref)
	}
}

func detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func emptyNode(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// isAncestor reports whether ancestor is a proper ancestor of n.
func isAncestor(ancestor, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// contains reports whether n is ancestor or self of other.
func contains(n, other *html.Node) bool {
	return n == other || isAncestor(n, other)
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func newElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

func newText(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// CloneTree returns a detached deep copy of n, e.g. to compare with
// Changes after editing.
func CloneTree(n *html.Node) *html.Node {
	return cloneNode(n, true)
}

// cloneNode copies n. A deep clone copies the whole subtree.
func cloneNode(n *html.Node, deep bool) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	if deep {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			clone.AppendChild(cloneNode(c, true))
		}
	}
	return clone
}

func isText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

func isElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// isWhitespaceText reports text nodes that hold element content whitespace
// only, like the newline between two tags.
func isWhitespaceText(n *html.Node) bool {
	return isText(n) && strings.TrimFunc(n.Data, unicode.IsSpace) == ""
}

// tagAtom returns the atom of an element, looking it up for nodes created
// without one.
func tagAtom(n *html.Node) atom.Atom {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}
	if n.DataAtom != 0 {
		return n.DataAtom
	}
	return atom.Lookup([]byte(strings.ToLower(n.Data)))
}

func textLen(n *html.Node) int {
	return utf8.RuneCountInString(n.Data)
}

// runeSlice returns s[from:to] counted in runes, clamped to the string.
func runeSlice(s string, from, to int) string {
	r := []rune(s)
	if from < 0 {
		from = 0
	}
	if to > len(r) {
		to = len(r)
	}
	if from >= to {
		return ""
	}
	return string(r[from:to])
}

// textContent concatenates the data of all descendant text nodes.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

// textNodes returns the descendant text nodes of n in document order.
func textNodes(n *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				nodes = append(nodes, c)
			} else {
				walk(c)
			}
		}
	}
	walk(n)
	return nodes
}

func firstTextNode(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return c
		}
		if t := firstTextNode(c); t != nil {
			return t
		}
	}
	return nil
}

// trimLeadingSpace strips leading whitespace from a text node that has
// some visible content.
func trimLeadingSpace(n *html.Node) {
	idx := strings.IndexFunc(n.Data, func(r rune) bool { return !unicode.IsSpace(r) })
	if idx > 0 {
		n.Data = n.Data[idx:]
	}
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	// Add if not found
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	if !isElement(n) || class == "" {
		return false
	}
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func addClass(n *html.Node, class string) {
	if hasClass(n, class) {
		return
	}
	classes := strings.TrimSpace(getAttr(n, "class") + " " + class)
	setAttr(n, "class", classes)
}
