package logger

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// NewLineWriter returns a writer that logs every line written to it at lvl.
// A trailing line without a newline is logged on Close.
func NewLineWriter(lg Logger, lvl Level, fields ...Field) io.WriteCloser {
	return &lineWriter{lg: lg, lvl: lvl.normalize(), fields: fields}
}

type lineWriter struct {
	mu     sync.Mutex
	lg     Logger
	lvl    Level
	fields []Field
	buf    bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		i := bytes.IndexByte(w.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := string(w.buf.Next(i + 1))
		w.log(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

func (w *lineWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.log(strings.TrimRight(w.buf.String(), "\r"))
		w.buf.Reset()
	}
	return nil
}

func (w *lineWriter) log(line string) {
	switch w.lvl {
	case Debug:
		w.lg.Debug(line, w.fields...)
	case Warn:
		w.lg.Warn(line, w.fields...)
	case Error:
		w.lg.Error(line, w.fields...)
	default:
		w.lg.Info(line, w.fields...)
	}
}
