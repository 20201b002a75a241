package main

import (
	"os"

	"github.com/dannyswat/richedit"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// fileConfig is the optional -config file:
//
//	ending_break = false
//	fill_up = true
//	ephemeral_class = "filler"
//	log_file = "richedit.log"
//
// Flags win over the file.
type fileConfig struct {
	EndingBreak    *bool  `toml:"ending_break"`
	FillUp         *bool  `toml:"fill_up"`
	EphemeralClass string `toml:"ephemeral_class"`
	LogFile        string `toml:"log_file"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse %s", path)
	}
	return cfg, nil
}

func (c fileConfig) options() []richedit.Option {
	var opts []richedit.Option
	if c.EndingBreak != nil {
		opts = append(opts, richedit.WithEndingBreak(*c.EndingBreak))
	}
	if c.FillUp != nil {
		opts = append(opts, richedit.WithFillUp(*c.FillUp))
	}
	if c.EphemeralClass != "" {
		opts = append(opts, richedit.WithEphemeralClass(c.EphemeralClass))
	}
	return opts
}
