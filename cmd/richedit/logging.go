package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
)

// setupLogger sends warnings and errors to stderr, debug output too when
// verbose is set. With a log path every entry is also appended to that file,
// which the caller closes.
func setupLogger(stderr io.Writer, verbose bool, logPath string) (*logrus.Logger, *os.File, error) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.WarnLevel)

	levels := []logrus.Level{
		logrus.WarnLevel,
		logrus.ErrorLevel,
		logrus.FatalLevel,
		logrus.PanicLevel,
	}
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
		levels = append(levels, logrus.InfoLevel, logrus.DebugLevel)
	}
	logger.AddHook(&writer.Hook{Writer: stderr, LogLevels: levels})

	if logPath == "" {
		return logger, nil, nil
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open %s", logPath)
	}
	logger.SetLevel(logrus.DebugLevel)
	logger.AddHook(&writer.Hook{Writer: f, LogLevels: logrus.AllLevels})
	return logger, f, nil
}
