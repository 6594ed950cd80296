// Package modkit provides module wiring and core deps
package modkit

import (
	"time"

	"ordertrack/internal/modkit/repokit"
	"ordertrack/internal/platform/config"
	"ordertrack/internal/platform/logger"
	"ordertrack/internal/platform/store"
	ptime "ordertrack/internal/platform/time"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	Store *store.Store
	Clock ptime.Clock
}

// Now reads the configured clock, the wall clock when unset
func (d Deps) Now() time.Time {
	if d.Clock == nil {
		return ptime.System()
	}
	return d.Clock()
}

// DB returns the ledger seam or nil when no store is configured
func (d Deps) DB() repokit.TxRunner {
	if d.Store == nil {
		return nil
	}
	return d.Store.DB
}
