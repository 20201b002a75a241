// Package richedit implements the structural edits of a rich-text editor on
// golang.org/x/net/html trees: line breaks, deletion of the selected range and
// splitting blocks at the caret.
package richedit

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Editor is one editing session on an editable root.
type Editor struct {
	ID uuid.UUID

	cfg   Config
	limit *html.Node
	sel   Selection
	dom   DOMUtil
	log   *logrus.Entry
	keys  *keyRegistry
}

// New creates an editing session for editable, which bounds every edit.
func New(editable *html.Node, opts ...Option) *Editor {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.EphemeralClass == "" {
		cfg.EphemeralClass = DefaultEphemeralClass
	}

	e := &Editor{
		ID:    uuid.New(),
		cfg:   cfg,
		limit: editable,
		dom:   cfg.DOMUtil,
		sel:   cfg.Selection,
		keys:  newKeyRegistry(),
	}
	if e.dom == nil {
		e.dom = &DefaultDOMUtil{EphemeralClass: cfg.EphemeralClass}
	}
	if e.sel == nil {
		ds := NewDocumentSelection(editable, e.dom)
		ds.OnSelect(cfg.OnSelect)
		e.sel = ds
	}
	e.log = cfg.Logger.WithField("session", e.ID.String())
	return e
}

// Selection returns the selection service of the session.
func (e *Editor) Selection() Selection {
	return e.sel
}

// Editable returns the editable root.
func (e *Editor) Editable() *html.Node {
	return e.limit
}

// SetCaret places a collapsed range at container/offset.
func (e *Editor) SetCaret(container *html.Node, offset int) *Range {
	return e.SetSelection(container, offset, container, offset)
}

// SetSelection makes the given boundary points the active range.
func (e *Editor) SetSelection(startContainer *html.Node, startOffset int, endContainer *html.Node, endOffset int) *Range {
	rng := &Range{
		StartContainer: startContainer,
		StartOffset:    startOffset,
		EndContainer:   endContainer,
		EndOffset:      endOffset,
		LimitObject:    e.limit,
	}
	e.sel.SetRange(rng)
	e.sel.Update(rng, nil)
	return rng
}

func (e *Editor) isEphemeral(n *html.Node) bool {
	return isElement(n) && tagAtom(n) == atom.Br && hasClass(n, e.cfg.EphemeralClass)
}

func (e *Editor) newEphemeralBreak() *html.Node {
	br := newElement("br")
	addClass(br, e.cfg.EphemeralClass)
	return br
}

// fillUpElement returns the placeholder for empty blocks, or nil when
// fill-ups are disabled.
func (e *Editor) fillUpElement() *html.Node {
	if !e.cfg.FillUp {
		return nil
	}
	return e.newEphemeralBreak()
}

// fillUp replaces the content of n with a single fill-up.
func (e *Editor) fillUp(n *html.Node) {
	emptyNode(n)
	if fill := e.fillUpElement(); fill != nil {
		n.AppendChild(fill)
	}
}

func (e *Editor) ephemeralBreaks(n *html.Node) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if e.isEphemeral(c) {
				found = append(found, c)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return found
}

// purgeEphemeral removes every ephemeral break under n.
func (e *Editor) purgeEphemeral(n *html.Node) {
	for _, br := range e.ephemeralBreaks(n) {
		detach(br)
	}
}

// keepFirstEphemeral removes all ephemeral breaks under n but the first.
func (e *Editor) keepFirstEphemeral(n *html.Node) {
	breaks := e.ephemeralBreaks(n)
	for i := 1; i < len(breaks); i++ {
		detach(breaks[i])
	}
}
