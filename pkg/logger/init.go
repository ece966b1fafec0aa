package logger

import (
	"context"
	"sync"
)

var (
	globalMu sync.RWMutex
	global   Logger = nil
)

// Init installs the process logger. Call once from main.
//
// Example:
//
//	logger.Init(logger.WithEnvironment("prod"), logger.WithLevel(logger.Warn))
func Init(opts ...Option) {
	globalMu.Lock()
	defer globalMu.Unlock()

	global = New(opts...)
}

// Set installs an already built logger as the process logger.
func Set(lg Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()

	global = lg
}

// L returns the process logger. If Init() was not called, it creates one with default settings.
func L() Logger {
	globalMu.RLock()
	g := global
	globalMu.RUnlock()

	if g == nil {
		// Safe lazy-init with write-lock if necessary
		globalMu.Lock()
		if global == nil {
			global = New()
		}
		g = global
		globalMu.Unlock()
	}
	return g
}

// FromContext returns logger from context if present, otherwise returns the process logger.
func FromContext(ctx context.Context) Logger {
	if ctx == nil {
		return L()
	}
	if v := ctx.Value(loggerContextKey{}); v != nil {
		if lg, ok := v.(Logger); ok && lg != nil {
			return lg
		}
	}
	return L()
}

// WithContext returns a new context carrying the provided logger.
func WithContext(ctx context.Context, lg Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerContextKey{}, lg)
}

// ContextWithFields returns a context carrying fields that Logger.WithContext
// attaches. Fields already in ctx are kept.
func ContextWithFields(ctx context.Context, fields ...Field) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	prev := fieldsFromContext(ctx)
	all := make([]Field, 0, len(prev)+len(fields))
	all = append(all, prev...)
	all = append(all, fields...)
	return context.WithValue(ctx, fieldsContextKey{}, all)
}

func fieldsFromContext(ctx context.Context) []Field {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsContextKey{}).([]Field)
	return fields
}

// internal context key types to avoid collisions
type (
	loggerContextKey struct{}
	fieldsContextKey struct{}
)
