// Package logging builds the slog loggers used by the catalog binaries.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/murkotick/catalog-store/internal/pkg/config"
)

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

// New returns a logger writing to w in the configured format. The returned
// LevelVar controls its level and may be changed at any time.
func New(w io.Writer, cfg config.LogConfig) (*slog.Logger, *slog.LevelVar, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	lv := new(slog.LevelVar)
	lv.Set(level)

	opts := &slog.HandlerOptions{Level: lv}
	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}
	return slog.New(h), lv, nil
}

// Follow keeps lv in sync with the log level of reloaded configurations.
func Follow(vc *config.ViperConfig, lv *slog.LevelVar, logger *slog.Logger) {
	vc.Subscribe(func(c *config.Config) {
		level, err := ParseLevel(c.Log.Level)
		if err != nil {
			logger.Warn("ignoring log level from reloaded config", "err", err)
			return
		}
		if lv.Level() != level {
			lv.Set(level)
			logger.Info("log level changed", "level", level.String())
		}
	})
}
