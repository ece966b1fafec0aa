package logger

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a Logger built on zap, configurable via functional options.
func New(opts ...Option) Logger {
	// defaults
	cfg := &Config{
		Environment:         "dev",
		Level:               Info,
		TimestampPattern:    DefaultTimestampPattern,
		IncludeFilename:     true,
		IncludeLine:         true,
		IncludeFunctionName: true,
		Color:               ColorNever,
	}

	for _, o := range opts {
		o(cfg)
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	s := newSettings(cfg)
	core := zapcore.NewCore(newLineEncoder(s), zapcore.AddSync(cfg.Output), s)

	// Add caller so lines carry file, function and line, skipping our own
	// exported method and emit to reach the user's call site.
	zopts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(2)}
	if cfg.Clock != nil {
		zopts = append(zopts, zap.WithClock(cfg.Clock))
	}

	return &zapLogger{
		z: zap.New(core, zopts...),
		s: s,
	}
}

// WithOption helpers to construct config via options:
func WithEnvironment(env string) Option {
	return func(c *Config) { c.Environment = env }
}
func WithLevel(l Level) Option {
	return func(c *Config) { c.Level = l }
}
func WithEnabled(enabled bool) Option {
	return func(c *Config) { c.Enabled = &enabled }
}
func WithTimestampPattern(pattern string) Option {
	return func(c *Config) { c.TimestampPattern = pattern }
}
func WithIncludeFilename(include bool) Option {
	return func(c *Config) { c.IncludeFilename = include }
}
func WithIncludeLine(include bool) Option {
	return func(c *Config) { c.IncludeLine = include }
}
func WithIncludeFunctionName(include bool) Option {
	return func(c *Config) { c.IncludeFunctionName = include }
}

// WithColor forces color on or off.
func WithColor(color bool) Option {
	return func(c *Config) {
		c.Color = ColorNever
		if color {
			c.Color = ColorAlways
		}
	}
}
func WithColorMode(mode ColorMode) Option {
	return func(c *Config) { c.Color = mode }
}

// WithOutput replaces the stdout sink.
func WithOutput(w io.Writer) Option {
	return func(c *Config) { c.Output = w }
}
func WithClock(clock zapcore.Clock) Option {
	return func(c *Config) { c.Clock = clock }
}

// zapLogger implements Logger
type zapLogger struct {
	z *zap.Logger
	s *settings
}

func (z *zapLogger) With(fields ...Field) Logger {
	_, zapFields := toZap(fields...)
	return &zapLogger{z: z.z.With(zapFields...), s: z.s}
}

func (z *zapLogger) Debug(msg string, fields ...Field) { z.emit(zapcore.DebugLevel, msg, nil, fields) }
func (z *zapLogger) Info(msg string, fields ...Field)  { z.emit(zapcore.InfoLevel, msg, nil, fields) }
func (z *zapLogger) Warn(msg string, fields ...Field)  { z.emit(zapcore.WarnLevel, msg, nil, fields) }
func (z *zapLogger) Error(msg string, fields ...Field) { z.emit(zapcore.ErrorLevel, msg, nil, fields) }

func (z *zapLogger) DebugFunc(fn func() string, fields ...Field) {
	z.emit(zapcore.DebugLevel, "", lazy(fn), fields)
}
func (z *zapLogger) InfoFunc(fn func() string, fields ...Field) {
	z.emit(zapcore.InfoLevel, "", lazy(fn), fields)
}
func (z *zapLogger) WarnFunc(fn func() string, fields ...Field) {
	z.emit(zapcore.WarnLevel, "", lazy(fn), fields)
}
func (z *zapLogger) ErrorFunc(fn func() string, fields ...Field) {
	z.emit(zapcore.ErrorLevel, "", lazy(fn), fields)
}

func (z *zapLogger) Debugf(format string, args ...any) {
	z.emit(zapcore.DebugLevel, "", sprintf(format, args), nil)
}
func (z *zapLogger) Infof(format string, args ...any) {
	z.emit(zapcore.InfoLevel, "", sprintf(format, args), nil)
}
func (z *zapLogger) Warnf(format string, args ...any) {
	z.emit(zapcore.WarnLevel, "", sprintf(format, args), nil)
}
func (z *zapLogger) Errorf(format string, args ...any) {
	z.emit(zapcore.ErrorLevel, "", sprintf(format, args), nil)
}

// emit must be called directly from the exported methods; the caller skip
// configured in New depends on it.
func (z *zapLogger) emit(lvl zapcore.Level, msg string, fn func() string, fields []Field) {
	ce := z.z.Check(lvl, msg)
	if ce == nil {
		return
	}
	if fn != nil {
		ce.Message = fn()
	}
	site, zapFields := toZap(fields...)
	if site != nil {
		ce.Caller = zapcore.EntryCaller{
			Defined:  true,
			File:     site.File,
			Line:     site.Line,
			Function: site.Function,
		}
	} else {
		ce.Caller.Function = shortFunction(ce.Caller.Function)
	}
	ce.Write(zapFields...)
}

func lazy(fn func() string) func() string {
	if fn == nil {
		return func() string { return "" }
	}
	return fn
}

func sprintf(format string, args []any) func() string {
	return func() string { return fmt.Sprintf(format, args...) }
}

func (z *zapLogger) WithContext(ctx context.Context) Logger {
	fields := fieldsFromContext(ctx)
	if len(fields) == 0 {
		return z
	}
	return z.With(fields...)
}

func (z *zapLogger) Enable()         { z.s.enabled.Store(true) }
func (z *zapLogger) Disable()        { z.s.enabled.Store(false) }
func (z *zapLogger) IsEnabled() bool { return z.s.enabled.Load() }

func (z *zapLogger) SetLevel(l Level) { z.s.level.SetLevel(l.zap()) }
func (z *zapLogger) GetLevel() Level  { return fromZap(z.s.level.Level()) }

func (z *zapLogger) SetTimestampPattern(pattern string) { z.s.setTimestampPattern(pattern) }

func (z *zapLogger) EnableColor()         { z.s.color.Store(true) }
func (z *zapLogger) DisableColor()        { z.s.color.Store(false) }
func (z *zapLogger) IsColorEnabled() bool { return z.s.color.Load() }

func (z *zapLogger) SetIncludeFilename(include bool)     { z.s.filename.Store(include) }
func (z *zapLogger) SetIncludeLine(include bool)         { z.s.line.Store(include) }
func (z *zapLogger) SetIncludeFunctionName(include bool) { z.s.function.Store(include) }

// Close or Sync if needed
func (z *zapLogger) Sync() error {
	return z.z.Sync()
}

// NewDevelopment returns an enabled logger that shows debug lines in color
// when stdout is a terminal.
func NewDevelopment() Logger {
	return New(WithEnvironment("dev"), WithLevel(Debug), WithColorMode(ColorAuto))
}

// NewProduction returns a logger that stays silent until Enable is called.
func NewProduction() Logger {
	return New(WithEnvironment("prod"), WithLevel(Info), WithColor(false))
}
