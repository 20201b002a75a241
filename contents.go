package richedit

import "github.com/pkg/errors"

// Contents returns the inner markup of the editable without the ephemeral
// breaks the edits inserted.
func (e *Editor) Contents() (string, error) {
	clone := cloneNode(e.limit, true)
	e.purgeEphemeral(clone)
	s, err := RenderChildren(clone)
	if err != nil {
		return "", errors.Wrap(err, "failed to fetch contents")
	}
	return s, nil
}

// RawContents is like Contents but keeps ephemeral breaks.
func (e *Editor) RawContents() (string, error) {
	return RenderChildren(e.limit)
}
