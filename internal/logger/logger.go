// Package logger is the diagnostic log of a flash run. It is written to
// stderr and kept apart from the step output shown on stdout.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn or error. Empty means warn.
	Level string
	// JSON switches from the console format to one JSON object per line.
	JSON bool
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

// Logger is safe to use as a nil pointer; a nil *Logger discards everything.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger from opts. An unknown level is an error.
func New(opts Options) (*Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	return &Logger{z: zerolog.New(out).Level(level).With().Timestamp().Logger()}, nil
}

func parseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// With returns a logger adding the key/value pairs to every entry.
// Non-string keys and a trailing key without a value are ignored.
func (l *Logger) With(keyvals ...any) *Logger {
	if l == nil {
		return nil
	}
	ctx := l.z.With()
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, keyvals[i+1])
	}
	return &Logger{z: ctx.Logger()}
}

// ForStep tags entries with a pipeline step.
func (l *Logger) ForStep(step string) *Logger {
	return l.With("step", step)
}

// ForCommand tags entries with the argv of an external command.
func (l *Logger) ForCommand(argv []string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{z: l.z.With().Strs("argv", argv).Logger()}
}

func (l *Logger) Debug(msg string) {
	if l != nil {
		l.z.Debug().Msg(msg)
	}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l != nil {
		l.z.Debug().Msgf(format, args...)
	}
}

func (l *Logger) Info(msg string) {
	if l != nil {
		l.z.Info().Msg(msg)
	}
}

func (l *Logger) Warn(msg string) {
	if l != nil {
		l.z.Warn().Msg(msg)
	}
}

// Error logs msg at error level with err attached when non-nil.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	e := l.z.Error()
	if err != nil {
		e = e.Err(err)
	}
	e.Msg(msg)
}
