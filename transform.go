package richedit

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// TransformDomObject replaces node with a new element named tag. Attributes,
// including style, are copied in order and the children are moved over.
// node is detached afterwards.
func TransformDomObject(node *html.Node, tag string) (*html.Node, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, errors.New("cannot transform into an empty tag name")
	}
	if !isElement(node) {
		return nil, errors.Wrapf(ErrNotElement, "cannot transform into <%s>", tag)
	}
	parent := node.Parent
	if parent == nil {
		return nil, errors.Wrapf(ErrDetached, "cannot transform <%s> into <%s>", node.Data, tag)
	}

	n := newElement(tag)
	n.Namespace = node.Namespace
	n.Attr = append([]html.Attribute(nil), node.Attr...)
	for c := node.FirstChild; c != nil; c = node.FirstChild {
		node.RemoveChild(c)
		n.AppendChild(c)
	}

	parent.InsertBefore(n, node)
	parent.RemoveChild(node)
	return n, nil
}

// TransformDomObject renames node like the package function and keeps the
// active range on the new element.
func (e *Editor) TransformDomObject(node *html.Node, tag string) (*html.Node, error) {
	n, err := TransformDomObject(node, tag)
	if err != nil {
		return nil, err
	}

	if rng := e.sel.Range(); rng != nil {
		rng.remap(func(c *html.Node, o int) (*html.Node, int) {
			if c == node {
				return n, o
			}
			return c, o
		})
		e.sel.Update(rng, nil)
	}
	return n, nil
}
