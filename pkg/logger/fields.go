package logger

// Helper constructors for common field types.
// These make call sites readable: logger.Info("ok", String("user", "leo"), Int("n", 7))

func String(key, v string) Field          { return Field{Key: key, Value: v} }
func Int(key string, v int) Field         { return Field{Key: key, Value: v} }
func Int64(key string, v int64) Field     { return Field{Key: key, Value: v} }
func Bool(key string, v bool) Field       { return Field{Key: key, Value: v} }
func Float64(key string, v float64) Field { return Field{Key: key, Value: v} }
func Any(key string, v any) Field         { return Field{Key: key, Value: v} }
func Err(err error) Field                 { return Field{Key: "error", Value: err} }

// Source is an explicit call site. It replaces the one captured from the
// runtime, for callers that forward a location from somewhere else (a child
// process, a script, another language runtime).
type Source struct {
	File     string
	Function string
	Line     int
}

const sourceKey = "\x00source"

// At attaches an explicit call site to a single log call. Function is
// rendered verbatim. It has no effect when passed to With.
func At(file, function string, line int) Field {
	return Field{Key: sourceKey, Value: Source{File: file, Function: function, Line: line}}
}
