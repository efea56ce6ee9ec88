package llm

import (
	"context"
	"sort"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
)

// Fields are attached to a log entry as logx structured fields.
type Fields map[string]any

// Logger is the logging surface used by the client.
type Logger interface {
	Debug(ctx context.Context, msg string, fields Fields)
	Info(ctx context.Context, msg string, fields Fields)
	Warn(ctx context.Context, msg string, fields Fields)
	Error(ctx context.Context, err error, fields Fields)
}

type logxLogger struct {
	level uint32
}

// NewLogger returns a logx backed Logger that drops entries below level.
// The level does not change the process wide logx level.
func NewLogger(level string) Logger {
	return &logxLogger{level: parseLevel(level)}
}

func (l *logxLogger) Debug(ctx context.Context, msg string, fields Fields) {
	if l.level > logx.DebugLevel {
		return
	}
	logx.WithContext(ctx).Debugw(msg, fields.logFields()...)
}

func (l *logxLogger) Info(ctx context.Context, msg string, fields Fields) {
	if l.level > logx.InfoLevel {
		return
	}
	logx.WithContext(ctx).Infow(msg, fields.logFields()...)
}

// Warn goes through the slow channel, logx has no warning level.
func (l *logxLogger) Warn(ctx context.Context, msg string, fields Fields) {
	if l.level > logx.InfoLevel {
		return
	}
	logx.WithContext(ctx).Sloww(msg, fields.logFields()...)
}

func (l *logxLogger) Error(ctx context.Context, err error, fields Fields) {
	if l.level > logx.ErrorLevel {
		return
	}
	logx.WithContext(ctx).Errorw(err.Error(), fields.logFields()...)
}

func parseLevel(level string) uint32 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logx.DebugLevel
	case "warn", "error":
		return logx.ErrorLevel
	case "severe", "fatal":
		return logx.SevereLevel
	default:
		return logx.InfoLevel
	}
}

// logFields returns the fields ordered by key.
func (f Fields) logFields() []logx.LogField {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]logx.LogField, 0, len(keys))
	for _, k := range keys {
		out = append(out, logx.Field(k, f[k]))
	}
	return out
}
