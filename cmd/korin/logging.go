package main

import (
	"context"
	"log/slog"

	"github.com/sirupsen/logrus"
)

// logrusHandler bridges the client's slog interface onto logrus, so
// the CLI controls formatting and level in one place.
type logrusHandler struct {
	logger *logrus.Logger
	fields logrus.Fields
}

func newLogrusHandler(logger *logrus.Logger) *logrusHandler {
	return &logrusHandler{logger: logger, fields: logrus.Fields{}}
}

func (h *logrusHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.IsLevelEnabled(logrusLevel(level))
}

func (h *logrusHandler) Handle(_ context.Context, record slog.Record) error {
	fields := make(logrus.Fields, len(h.fields)+record.NumAttrs())
	for key, value := range h.fields {
		fields[key] = value
	}
	record.Attrs(func(attr slog.Attr) bool {
		fields[attr.Key] = attr.Value.Any()
		return true
	})

	h.logger.WithFields(fields).Log(logrusLevel(record.Level), record.Message)
	return nil
}

func (h *logrusHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make(logrus.Fields, len(h.fields)+len(attrs))
	for key, value := range h.fields {
		fields[key] = value
	}
	for _, attr := range attrs {
		fields[attr.Key] = attr.Value.Any()
	}
	return &logrusHandler{logger: h.logger, fields: fields}
}

func (h *logrusHandler) WithGroup(name string) slog.Handler {
	// Groups are flattened; the client only logs shallow attributes.
	return h
}

func logrusLevel(level slog.Level) logrus.Level {
	switch {
	case level >= slog.LevelError:
		return logrus.ErrorLevel
	case level >= slog.LevelWarn:
		return logrus.WarnLevel
	case level >= slog.LevelInfo:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}
