package catalog

import (
	"log/slog"

	"github.com/murkotick/catalog-store/internal/pkg/clock"
)

// Option configures a Store at construction.
type Option func(*Store)

// WithClock sets the time source for creation timestamps and events.
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithIDGenerator replaces the uuid-based id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithLogger sets the logger for load results and failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPageSize fixes the page size. Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n >= 1 {
			s.pageSize = n
		}
	}
}
