package logger

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Field represents a key/value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

// Level is a lightweight level type for configuration.
// Levels are ordered: Debug < Info < Warn < Error.
type Level string

const (
	Debug Level = "debug"
	Info  Level = "info"
	Warn  Level = "warn"
	Error Level = "error"
)

// ParseLevel parses a level name, case-insensitively. "warning" is accepted for Warn.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

// Tag is the bracketed label rendered in a log line, e.g. INFO.
func (l Level) Tag() string {
	return strings.ToUpper(string(l.normalize()))
}

// Enabled reports whether a record at lvl passes a threshold of l.
func (l Level) Enabled(lvl Level) bool {
	return lvl.zap() >= l.zap()
}

func (l Level) normalize() Level {
	if p, err := ParseLevel(string(l)); err == nil {
		return p
	}
	return Info
}

func (l Level) zap() zapcore.Level {
	switch l.normalize() {
	case Debug:
		return zapcore.DebugLevel
	case Warn:
		return zapcore.WarnLevel
	case Error:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func fromZap(l zapcore.Level) Level {
	switch {
	case l <= zapcore.DebugLevel:
		return Debug
	case l == zapcore.InfoLevel:
		return Info
	case l == zapcore.WarnLevel:
		return Warn
	default:
		return Error
	}
}

// Logger is the application-facing logger interface.
// Methods accept variadic Fields (optional) so you can call e.g. Info("msg") or Info("msg", String("k","v")).
//
// The Func and f variants defer building the message until the level gate has
// passed, so expensive messages cost nothing when they are filtered out.
type Logger interface {
	With(fields ...Field) Logger

	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	DebugFunc(fn func() string, fields ...Field)
	InfoFunc(fn func() string, fields ...Field)
	WarnFunc(fn func() string, fields ...Field)
	ErrorFunc(fn func() string, fields ...Field)

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	// WithContext returns a logger enriched with fields carried by ctx.
	WithContext(ctx context.Context) Logger

	Controls

	Sync() error
}

// Controls mutate the live configuration of a logger. A logger and every
// logger derived from it through With share one configuration; changes apply
// to lines emitted afterwards.
type Controls interface {
	Enable()
	Disable()
	IsEnabled() bool

	SetLevel(l Level)
	GetLevel() Level

	SetTimestampPattern(pattern string)

	EnableColor()
	DisableColor()
	IsColorEnabled() bool

	SetIncludeFilename(include bool)
	SetIncludeLine(include bool)
	SetIncludeFunctionName(include bool)
}

// ColorMode selects how color output is decided when the logger is built.
type ColorMode string

const (
	// ColorAuto colors output only when it is a terminal and NO_COLOR is unset.
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config contains options to initialize a logger.
type Config struct {
	Environment string // "dev" or "prod"; decides Enabled when it is nil
	Level       Level  // "debug","info","warn","error"
	Enabled     *bool

	TimestampPattern    string // strftime pattern
	IncludeFilename     bool
	IncludeLine         bool
	IncludeFunctionName bool

	Color ColorMode

	Output io.Writer
	Clock  zapcore.Clock
}

// Option for functional options pattern.
type Option func(*Config)
