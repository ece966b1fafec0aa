package logger

import (
	"github.com/lestrrat-go/strftime"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultTimestampPattern renders month/day and hour:minute:second.
const DefaultTimestampPattern = "%m/%d %H:%M:%S"

var defaultTimestamp = func() *strftime.Strftime {
	f, err := strftime.New(DefaultTimestampPattern)
	if err != nil {
		panic(err)
	}
	return f
}()

// settings is the live configuration of a logger. Every field is read on
// each emit and may be changed concurrently without locks.
type settings struct {
	enabled *atomic.Bool
	level   zap.AtomicLevel
	color   *atomic.Bool

	filename *atomic.Bool
	line     *atomic.Bool
	function *atomic.Bool

	timestamp *atomic.Pointer[strftime.Strftime]
}

func newSettings(cfg *Config) *settings {
	s := &settings{
		enabled:   atomic.NewBool(cfg.enabled()),
		level:     zap.NewAtomicLevelAt(cfg.Level.zap()),
		color:     atomic.NewBool(cfg.colorEnabled()),
		filename:  atomic.NewBool(cfg.IncludeFilename),
		line:      atomic.NewBool(cfg.IncludeLine),
		function:  atomic.NewBool(cfg.IncludeFunctionName),
		timestamp: atomic.NewPointer(defaultTimestamp),
	}
	s.setTimestampPattern(cfg.TimestampPattern)
	return s
}

// Enabled implements zapcore.LevelEnabler: the gate every record goes through.
func (s *settings) Enabled(l zapcore.Level) bool {
	return s.enabled.Load() && s.level.Enabled(l)
}

// setTimestampPattern keeps the current pattern when p does not compile.
func (s *settings) setTimestampPattern(p string) {
	f, err := strftime.New(p)
	if err != nil {
		return
	}
	s.timestamp.Store(f)
}

func (c *Config) enabled() bool {
	if c.Enabled != nil {
		return *c.Enabled
	}
	return c.Environment != "prod"
}
