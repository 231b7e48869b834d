package config

import (
	"flag"
	"os"
	"time"

	"github.com/vehicleq/vehicleq-go/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the VehicleQ server
//	-t int      request timeout in seconds
//	-d string   path to the local state database
//	-e string   directory for export artifacts
//
// Args are pre-filtered with flagx.FilterArgs so flags owned elsewhere
// (e.g. -c/-config) do not trip this flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the VehicleQ server")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local state database")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "directory for export artifacts")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
