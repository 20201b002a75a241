// Command richedit replays keystrokes against an HTML document and prints
// the edited markup.
//
//	richedit -in doc.html -caret 0.0:5 -keys '[{"key":"enter"}]'
//	richedit -in doc.html -caret '//h1/text():3' -json -keys '[{"key":"enter","shift":true}]'
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dannyswat/richedit"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/net/html"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("richedit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "-", "HTML file to edit, - for stdin")
	caret := fs.String("caret", "", "Start of the range as path:offset, path relative to <body> or an XPath")
	focus := fs.String("focus", "", "End of the range as path:offset, defaults to the caret")
	keys := fs.String("keys", "[]", "JSON array of keystrokes to replay")
	raw := fs.Bool("raw", false, "Keep ephemeral breaks in the output")
	noEndingBreak := fs.Bool("no-ending-break", false, "Do not append ending breaks on Shift+Enter")
	noFillUp := fs.Bool("no-fill-up", false, "Do not fill empty blocks with breaks")
	changes := fs.Bool("changes", false, "Report the changes made by the keystrokes on stderr")
	asJSON := fs.Bool("json", false, "Print the result and the change report as JSON")
	configPath := fs.String("config", "", "TOML file with editor settings")
	logPath := fs.String("log", "", "Append all log entries, debug included, to this file")
	verbose := fs.Bool("v", false, "Log debug output")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	fail := color.New(color.FgRed)
	ok := color.New(color.FgGreen)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fail.Fprintf(stderr, "Invalid -config: %s\n", err)
		return 1
	}
	if *logPath == "" {
		*logPath = cfg.LogFile
	}
	logger, logFile, err := setupLogger(stderr, *verbose, *logPath)
	if err != nil {
		fail.Fprintf(stderr, "Cannot open log: %s\n", err)
		return 1
	}
	if logFile != nil {
		defer logFile.Close()
	}

	content, err := readInput(*in, stdin)
	if err != nil {
		fail.Fprintf(stderr, "Cannot read input: %s\n", err)
		return 1
	}
	body, err := richedit.ParseEditable(content)
	if err != nil {
		fail.Fprintf(stderr, "Cannot parse input: %s\n", err)
		return 1
	}

	opts := append(cfg.options(), richedit.WithLogger(logger))
	if *noEndingBreak {
		opts = append(opts, richedit.WithEndingBreak(false))
	}
	if *noFillUp {
		opts = append(opts, richedit.WithFillUp(false))
	}
	ed := richedit.New(body, opts...)
	original := richedit.CloneTree(body)

	if *caret != "" {
		if *focus == "" {
			*focus = *caret
		}
		start, startOffset, err := parsePoint(body, *caret)
		if err != nil {
			fail.Fprintf(stderr, "Invalid -caret: %s\n", err)
			return 1
		}
		end, endOffset, err := parsePoint(body, *focus)
		if err != nil {
			fail.Fprintf(stderr, "Invalid -focus: %s\n", err)
			return 1
		}
		ed.SetSelection(start, startOffset, end, endOffset)
	}

	if !gjson.Valid(*keys) {
		fail.Fprintln(stderr, "Invalid -keys: not JSON")
		return 1
	}
	strokes := gjson.Parse(*keys).Array()
	for i, stroke := range strokes {
		if err := replay(ed, stroke); err != nil {
			fail.Fprintf(stderr, "Keystroke %d: %s\n", i, err)
			return 1
		}
	}

	var out string
	if *raw {
		out, err = ed.RawContents()
	} else {
		out, err = ed.Contents()
	}
	if err != nil {
		fail.Fprintf(stderr, "Cannot render result: %s\n", err)
		return 1
	}
	var report []richedit.Change
	if *changes || *asJSON {
		report, err = richedit.Changes(original, body)
		if err != nil {
			fail.Fprintf(stderr, "Cannot compare documents: %s\n", err)
			return 1
		}
	}

	if *asJSON {
		doc, err := encodeResult(ed, out, len(strokes), report)
		if err != nil {
			fail.Fprintf(stderr, "Cannot encode result: %s\n", err)
			return 1
		}
		fmt.Fprintln(stdout, doc)
	} else {
		fmt.Fprintln(stdout, out)
		for _, c := range report {
			fmt.Fprintln(stderr, c)
		}
	}
	ok.Fprintf(stderr, "Replayed %d keystrokes (session %s)\n", len(strokes), ed.ID)
	return 0
}

// encodeResult builds {"session","keystrokes","markup","changes":[...]}.
func encodeResult(ed *richedit.Editor, markup string, strokes int, report []richedit.Change) (string, error) {
	var err error
	set := func(doc, path string, value any) string {
		if err != nil {
			return doc
		}
		doc, err = sjson.Set(doc, path, value)
		return doc
	}

	doc := `{"changes":[]}`
	doc = set(doc, "session", ed.ID.String())
	doc = set(doc, "keystrokes", strokes)
	doc = set(doc, "markup", markup)
	for _, c := range report {
		entry := set("", "kind", string(c.Kind))
		entry = set(entry, "path", []int(c.Path))
		if c.Key != "" {
			entry = set(entry, "key", c.Key)
		}
		entry = set(entry, "before", c.Before)
		entry = set(entry, "after", c.After)
		if err == nil {
			doc, err = sjson.SetRaw(doc, "changes.-1", entry)
		}
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to encode result")
	}
	return doc, nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	var b []byte
	var err error
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	return string(b), nil
}

// replay applies one keystroke object, e.g. {"key":"enter","shift":true}.
func replay(ed *richedit.Editor, stroke gjson.Result) error {
	switch key := stroke.Get("key").String(); key {
	case "enter":
		ed.PreProcessKeyStrokes(richedit.KeyEvent{
			Type:    richedit.EventKeyDown,
			KeyCode: richedit.KeyEnter,
			Shift:   stroke.Get("shift").Bool(),
		})
	case "key":
		ed.PreProcessKeyStrokes(richedit.KeyEvent{
			Type:    richedit.EventKeyDown,
			KeyCode: int(stroke.Get("keyCode").Int()),
			Shift:   stroke.Get("shift").Bool(),
			Ctrl:    stroke.Get("ctrl").Bool(),
			Alt:     stroke.Get("alt").Bool(),
			Meta:    stroke.Get("meta").Bool(),
		})
	case "br":
		ed.InsertBreak()
	case "delete":
		ed.RemoveSelectedMarkup()
	case "html":
		return ed.InsertHTMLCode(stroke.Get("markup").String())
	case "transform":
		rng := ed.Selection().Range()
		if rng == nil || rng.StartContainer == nil {
			return errors.New("transform needs a caret")
		}
		target := rng.SplitObject
		if target == nil {
			target = rng.StartContainer
			if target.Type == html.TextNode {
				target = target.Parent
			}
		}
		_, err := ed.TransformDomObject(target, stroke.Get("tag").String())
		return err
	case "handler":
		return ed.AddScriptKeyHandler(int(stroke.Get("keyCode").Int()), stroke.Get("script").String())
	default:
		return errors.Errorf("unknown key %q", key)
	}
	return nil
}
