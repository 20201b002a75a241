package richedit

import "github.com/sirupsen/logrus"

// DefaultEphemeralClass marks breaks inserted only to keep empty blocks
// visible. They are stripped by Contents.
const DefaultEphemeralClass = "richedit-ephemera"

// Config controls an Editor.
type Config struct {
	// NeedEndingBreak appends an ephemeral break to a block when a line
	// break is inserted after its last text. Some hosts render the empty
	// last line without it, others do not.
	NeedEndingBreak bool
	// FillUp inserts ephemeral breaks into blocks that would otherwise be
	// empty.
	FillUp         bool
	EphemeralClass string

	Logger    *logrus.Logger
	DOMUtil   DOMUtil
	Selection Selection
	OnSelect  func(*Range)
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{
		NeedEndingBreak: true,
		FillUp:          true,
		EphemeralClass:  DefaultEphemeralClass,
		Logger:          logrus.StandardLogger(),
	}
}

// Option customizes the Config of a new Editor.
type Option func(*Config)

// WithEndingBreak controls the ephemeral break appended when a line break
// ends a block.
func WithEndingBreak(enabled bool) Option {
	return func(c *Config) { c.NeedEndingBreak = enabled }
}

// WithFillUp controls whether emptied blocks receive an ephemeral break.
func WithFillUp(enabled bool) Option {
	return func(c *Config) { c.FillUp = enabled }
}

// WithEphemeralClass sets the class marking ephemeral breaks.
func WithEphemeralClass(class string) Option {
	return func(c *Config) { c.EphemeralClass = class }
}

// WithLogger sets the logger the editor session logs to.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithDOMUtil replaces the default tree utilities.
func WithDOMUtil(u DOMUtil) Option {
	return func(c *Config) { c.DOMUtil = u }
}

// WithSelection replaces the default selection service. OnSelect is not
// wired into custom services.
func WithSelection(s Selection) Option {
	return func(c *Config) { c.Selection = s }
}

// WithOnSelect registers a callback run whenever the default selection
// service selects a range.
func WithOnSelect(fn func(*Range)) Option {
	return func(c *Config) { c.OnSelect = fn }
}
