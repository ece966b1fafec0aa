package logger

import (
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var _pool = buffer.NewPool()

// lineEncoder renders one human-readable line per entry:
//
//	<timestamp> [LEVEL] <file>.<function>:<line> - <message> <fields>
//
// Fields added through With live in the embedded JSON encoder and are
// appended as a JSON object when there are any.
type lineEncoder struct {
	zapcore.Encoder
	s *settings
}

func newLineEncoder(s *settings) *lineEncoder {
	return &lineEncoder{
		Encoder: zapcore.NewJSONEncoder(zapcore.EncoderConfig{SkipLineEnding: true}),
		s:       s,
	}
}

func (e *lineEncoder) Clone() zapcore.Encoder {
	return &lineEncoder{Encoder: e.Encoder.Clone(), s: e.s}
}

func (e *lineEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line := _pool.Get()

	ts := _pool.Get()
	_ = e.s.timestamp.Load().Format(ts, ent.Time)
	if ts.Len() > 0 {
		line.AppendString(ts.String())
		line.AppendByte(' ')
	}
	ts.Free()

	line.AppendByte('[')
	line.AppendString(fromZap(ent.Level).Tag())
	line.AppendByte(']')

	if site := e.callSite(ent.Caller); site != "" {
		line.AppendByte(' ')
		line.AppendString(site)
	}

	line.AppendString(" - ")
	line.AppendString(ent.Message)

	// The embedded encoder has no entry keys configured, so it only renders fields.
	if fb, err := e.Encoder.EncodeEntry(zapcore.Entry{}, fields); err == nil {
		if fb.Len() > len("{}") {
			line.AppendByte(' ')
			_, _ = line.Write(fb.Bytes())
		}
		fb.Free()
	}

	if e.s.color.Load() {
		colored := _pool.Get()
		colored.AppendString(colorFor(ent.Level))
		_, _ = colored.Write(line.Bytes())
		colored.AppendString(reset)
		line.Free()
		line = colored
	}

	line.AppendString(zapcore.DefaultLineEnding)
	return line, nil
}

// callSite renders the enabled context fields; absent parts are skipped.
func (e *lineEncoder) callSite(c zapcore.EntryCaller) string {
	var file, fn string
	if e.s.filename.Load() {
		file = baseName(c.File)
	}
	if e.s.function.Load() {
		fn = c.Function
	}

	b := _pool.Get()
	defer b.Free()
	b.AppendString(file)
	if file != "" && fn != "" {
		b.AppendByte('.')
	}
	b.AppendString(fn)
	if e.s.line.Load() && c.Line > 0 {
		b.AppendByte(':')
		b.AppendInt(int64(c.Line))
	}
	return b.String()
}

// baseName returns the last path segment of path up to its first dot:
// "/src/app/CameraVC.swift" becomes "CameraVC".
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[:i]
	}
	return path
}

// shortFunction strips the package path from a runtime function name:
// "github.com/x/app/pkg.(*T).Run" becomes "(*T).Run". The linker escapes
// dots in the last path element as %2e; unescaped major-version elements
// such as "yaml.v3" are recognised as part of the package too.
func shortFunction(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	i := strings.IndexByte(name, '.')
	for i >= 0 && isMajorVersion(name[i+1:]) {
		i += 1 + strings.IndexByte(name[i+1:], '.')
	}
	if i >= 0 {
		name = name[i+1:]
	}
	return strings.ReplaceAll(name, "%2e", ".")
}

// isMajorVersion reports whether s starts with a "v<digits>." element.
func isMajorVersion(s string) bool {
	end := strings.IndexByte(s, '.')
	if end < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:end] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
