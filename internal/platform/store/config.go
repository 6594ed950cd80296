package store

import (
	"time"

	"ordertrack/internal/platform/config"
)

// Supported drivers
const (
	DriverSQLite = "sqlite"
	DriverPG     = "pgsql"
)

// Config selects and configures the ledger backend
type Config struct {
	Driver string // "", DriverSQLite or DriverPG

	SQLite SQLiteConfig
	PG     PGConfig
}

// SQLiteConfig configures the embedded database file
type SQLiteConfig struct {
	Path        string
	BusyTimeout time.Duration
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
	AppName     string
}

// ConfigFromEnv reads SERVICE_STORE_*, SERVICE_SQLITE_* and SERVICE_PGSQL_*
func ConfigFromEnv(cfg config.Conf) Config {
	svc := cfg.Prefix("SERVICE_")
	c := Config{
		Driver: svc.Prefix("STORE_").MayEnum("DRIVER", DriverSQLite, "none", DriverSQLite, DriverPG),
		SQLite: SQLiteConfig{
			Path:        svc.Prefix("SQLITE_").MayString("PATH", "ordertrack.db"),
			BusyTimeout: svc.Prefix("SQLITE_").MayDuration("BUSY_TIMEOUT", 5*time.Second),
		},
	}
	if c.Driver == "none" {
		c.Driver = ""
	}
	if c.Driver == DriverPG {
		pg := svc.Prefix("PGSQL_")
		c.PG = PGConfig{
			URL:         pg.MustString("URL"),
			MaxConns:    int32(pg.MayInt("MAX_CONNS", 4)),
			LogSQL:      pg.MayBool("LOG_SQL", false),
			SlowQueryMs: pg.MayInt("SLOW_MS", 250),
			AppName:     pg.MayString("APP_NAME", "ordertrack"),
		}
	}
	return c
}
