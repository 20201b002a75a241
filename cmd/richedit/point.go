package main

import (
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/dannyswat/richedit"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// parsePoint resolves a boundary point given as "<node>:<offset>". The node
// is either a dotted child path below root ("0.1:3", "" for root itself) or
// an XPath expression starting with '/' ("//p[2]/text():3").
func parsePoint(root *html.Node, s string) (*html.Node, int, error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return nil, 0, errors.Errorf("%q is not path:offset", s)
	}
	pathPart, offsetPart := s[:i], s[i+1:]
	offset, err := strconv.Atoi(offsetPart)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "invalid offset in %q", s)
	}

	if strings.HasPrefix(pathPart, "/") {
		n, err := queryNode(root, pathPart)
		if err != nil {
			return nil, 0, err
		}
		return n, offset, nil
	}

	var path richedit.NodePath
	if pathPart != "" {
		for _, step := range strings.Split(pathPart, ".") {
			i, err := strconv.Atoi(step)
			if err != nil {
				return nil, 0, errors.Wrapf(err, "invalid path in %q", s)
			}
			path = append(path, i)
		}
	}
	n, err := richedit.GetNode(root, path)
	if err != nil {
		return nil, 0, err
	}
	return n, offset, nil
}

// queryNode evaluates expr and makes sure the match lies inside root.
func queryNode(root *html.Node, expr string) (*html.Node, error) {
	n, err := htmlquery.Query(root, expr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid XPath %q", expr)
	}
	if n == nil {
		return nil, errors.Errorf("XPath %q matches nothing", expr)
	}
	if _, err := richedit.GetPath(root, n); err != nil {
		return nil, errors.Wrapf(err, "XPath %q matches outside the editable", expr)
	}
	return n, nil
}
