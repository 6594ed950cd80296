package store

import (
	"ordertrack/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithTracer routes statement events to t; pg also honours PGConfig.LogSQL
func WithTracer(t QueryTracer) Option {
	return func(s *Store) error {
		s.tracer = t
		return nil
	}
}
