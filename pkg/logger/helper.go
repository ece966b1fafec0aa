package logger

import "go.uber.org/zap"

// toZap converts []Field to []zap.Field, pulling out the last At field.
func toZap(fields ...Field) (*Source, []zap.Field) {
	if len(fields) == 0 {
		return nil, nil
	}
	var site *Source
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if src, ok := f.Value.(Source); ok && f.Key == sourceKey {
			site = &src
			continue
		}
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return site, out
}
