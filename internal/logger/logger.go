package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
)

// New builds a logger writing to stderr so stdout stays free for results
// and MCP frames.
func New(json bool, level string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encoding := "console"
	if json {
		encoding = "json"
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(lvl),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}

	return cfg.Build()
}

// ParseLevel maps a config level name to a zap level
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level: %s", level)
	}
}

// OrNop returns l, or a no-op logger when l is nil
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// ProfileFields describes which answers a profile carries without logging
// the answers themselves.
func ProfileFields(p eligibility.Profile) []zap.Field {
	present := make([]string, 0, len(eligibility.AllFields))
	for _, f := range eligibility.AllFields {
		if p.Has(f) {
			present = append(present, string(f))
		}
	}
	return []zap.Field{
		zap.Strings("profile_fields", present),
		zap.Int("profile_field_count", len(present)),
	}
}

// CountsFields flattens tier counts into log fields
func CountsFields(c eligibility.Counts) []zap.Field {
	return []zap.Field{
		zap.Int("eligible", c.Eligible),
		zap.Int("partial", c.Partial),
		zap.Int("unmatched", c.Unmatched),
		zap.Int("total", c.Total),
	}
}
