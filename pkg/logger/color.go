package logger

import (
	"os"

	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const (
	escape = "\x1b["
	reset  = escape + "0m"
)

var levelColors = map[zapcore.Level]string{
	zapcore.DebugLevel: escape + "35m", // magenta
	zapcore.InfoLevel:  escape + "34m", // blue
	zapcore.WarnLevel:  escape + "33m", // yellow
	zapcore.ErrorLevel: escape + "31m", // red
}

func colorFor(l zapcore.Level) string {
	if c, ok := levelColors[l]; ok {
		return c
	}
	return levelColors[zapcore.ErrorLevel]
}

func (c *Config) colorEnabled() bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorAuto:
		return supportsColor(c.Output)
	default:
		return false
	}
}

// supportsColor reports whether w is a terminal and the user has not opted
// out through NO_COLOR (https://no-color.org).
func supportsColor(w any) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
