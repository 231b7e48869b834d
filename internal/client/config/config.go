// Package config assembles runtime settings for the VehicleQ CLI.
// Sources, in increasing precedence: built-in defaults, a JSON file given
// via -c/-config, then command-line flags.
package config

import "time"

// Config holds runtime settings for the VehicleQ CLI.
//
// S3 settings apply only when the operator exports to an S3-compatible
// destination; they are configurable through the JSON file.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabasePath   string
	ExportDir      string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://vehicleq.onrender.com"
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "vehicleq.db"
	c.ExportDir = "."
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
