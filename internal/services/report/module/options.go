package module

import "ordertrack/internal/platform/config"

// Options holds configuration settings for the report module
type Options struct {
	TopN      int
	Workers   int
	ChunkSize int
	OutputDir string
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("CORE_REPORT_")
	return Options{
		TopN:      rc.MayInt("TOP_N", 20),
		Workers:   rc.MayInt("WORKERS", 0),
		ChunkSize: rc.MayInt("CHUNK", 2048),
		OutputDir: rc.MayString("OUTPUT_DIR", "outputs"),
	}
}
