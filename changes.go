package richedit

import (
	"fmt"
	"sort"

	"golang.org/x/net/html"
)

// ChangeKind classifies an entry of a change report.
type ChangeKind string

const (
	ChangeText   ChangeKind = "text"   // text node content differs
	ChangeAttr   ChangeKind = "attr"   // attribute added, changed or removed
	ChangeTag    ChangeKind = "tag"    // element renamed, e.g. by TransformDomObject
	ChangeInsert ChangeKind = "insert" // node present only after the edit
	ChangeRemove ChangeKind = "remove" // node present only before the edit
)

// Change is one difference between two versions of an editable.
type Change struct {
	Kind ChangeKind
	// Path addresses the node in the tree it exists in: the edited tree
	// for inserts, the original one for everything else.
	Path   NodePath
	Key    string // attribute name for ChangeAttr
	Before string
	After  string
}

func (c Change) String() string {
	switch c.Kind {
	case ChangeAttr:
		return fmt.Sprintf("%s %v %s: %q -> %q", c.Kind, c.Path, c.Key, c.Before, c.After)
	case ChangeInsert:
		return fmt.Sprintf("%s %v %s", c.Kind, c.Path, c.After)
	case ChangeRemove:
		return fmt.Sprintf("%s %v %s", c.Kind, c.Path, c.Before)
	}
	return fmt.Sprintf("%s %v: %q -> %q", c.Kind, c.Path, c.Before, c.After)
}

// Changes compares the children of before and after index by index. It is
// meant for reporting what an edit did, so a node inserted in the middle of
// a list shows up as changes to every later sibling.
func Changes(before, after *html.Node) ([]Change, error) {
	return diffChildren(before, after, NodePath{})
}

func diffNodes(before, after *html.Node, path NodePath) ([]Change, error) {
	if before.Type != after.Type {
		return replaced(before, after, path)
	}

	var changes []Change
	switch before.Type {
	case html.TextNode:
		if before.Data != after.Data {
			changes = append(changes, Change{Kind: ChangeText, Path: path, Before: before.Data, After: after.Data})
		}
		return changes, nil
	case html.ElementNode:
		if before.Data != after.Data {
			changes = append(changes, Change{Kind: ChangeTag, Path: path, Before: before.Data, After: after.Data})
		}
		changes = append(changes, diffAttributes(before, after, path)...)
	}

	children, err := diffChildren(before, after, path)
	if err != nil {
		return nil, err
	}
	return append(changes, children...), nil
}

func replaced(before, after *html.Node, path NodePath) ([]Change, error) {
	old, err := RenderNode(before)
	if err != nil {
		return nil, err
	}
	cur, err := RenderNode(after)
	if err != nil {
		return nil, err
	}
	return []Change{
		{Kind: ChangeRemove, Path: path, Before: old},
		{Kind: ChangeInsert, Path: path, After: cur},
	}, nil
}

func diffAttributes(before, after *html.Node, path NodePath) []Change {
	old := make(map[string]string, len(before.Attr))
	for _, a := range before.Attr {
		old[a.Key] = a.Val
	}
	cur := make(map[string]string, len(after.Attr))
	for _, a := range after.Attr {
		cur[a.Key] = a.Val
	}

	keys := make([]string, 0, len(old)+len(cur))
	for k := range old {
		keys = append(keys, k)
	}
	for k := range cur {
		if _, ok := old[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var changes []Change
	for _, k := range keys {
		if old[k] != cur[k] {
			changes = append(changes, Change{Kind: ChangeAttr, Path: path, Key: k, Before: old[k], After: cur[k]})
		}
	}
	return changes
}

func diffChildren(before, after *html.Node, parentPath NodePath) ([]Change, error) {
	var changes []Change
	old, cur := childNodes(before), childNodes(after)

	common := len(old)
	if len(cur) < common {
		common = len(cur)
	}

	for i := 0; i < common; i++ {
		childChanges, err := diffNodes(old[i], cur[i], childPath(parentPath, i))
		if err != nil {
			return nil, err
		}
		changes = append(changes, childChanges...)
	}

	for i := common; i < len(old); i++ {
		s, err := RenderNode(old[i])
		if err != nil {
			return nil, err
		}
		changes = append(changes, Change{Kind: ChangeRemove, Path: childPath(parentPath, i), Before: s})
	}
	for i := common; i < len(cur); i++ {
		s, err := RenderNode(cur[i])
		if err != nil {
			return nil, err
		}
		changes = append(changes, Change{Kind: ChangeInsert, Path: childPath(parentPath, i), After: s})
	}
	return changes, nil
}

func childPath(parent NodePath, i int) NodePath {
	return append(append(NodePath(nil), parent...), i)
}
