package richedit

import (
	"sync"

	"github.com/dop251/goja"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewScriptKeyHandler compiles src, a JavaScript function expression such as
// "function(ev) { return !ev.shiftKey }", into a KeyHandler. The function
// receives the event as {type, keyCode, shiftKey, ctrlKey, altKey, metaKey}.
// Only an explicit false cancels the dispatch; a failing script does not.
func NewScriptKeyHandler(src string, log logrus.FieldLogger) (KeyHandler, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	vm := goja.New()
	v, err := vm.RunString("(" + src + ")")
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile key handler")
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, errors.New("key handler script is not a function")
	}

	// a goja runtime must not be used from two goroutines at once
	var mu sync.Mutex
	return func(ev KeyEvent) (cont bool) {
		mu.Lock()
		defer mu.Unlock()

		defer func() {
			if p := recover(); p != nil {
				log.WithField("panic", p).Error("key handler script panicked")
				cont = true
			}
		}()

		event := vm.NewObject()
		event.Set("type", ev.Type)
		event.Set("keyCode", ev.KeyCode)
		event.Set("shiftKey", ev.Shift)
		event.Set("ctrlKey", ev.Ctrl)
		event.Set("altKey", ev.Alt)
		event.Set("metaKey", ev.Meta)

		res, err := fn(goja.Undefined(), event)
		if err != nil {
			log.WithError(err).WithField("keyCode", ev.KeyCode).Warn("key handler script failed")
			return true
		}
		if res == nil || goja.IsUndefined(res) || goja.IsNull(res) {
			return true
		}
		return res.ToBoolean()
	}, nil
}

// AddScriptKeyHandler compiles src and registers it for key code.
func (e *Editor) AddScriptKeyHandler(code int, src string) error {
	h, err := NewScriptKeyHandler(src, e.log)
	if err != nil {
		return err
	}
	e.AddKeyHandler(code, h)
	return nil
}
