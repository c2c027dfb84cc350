package config

import (
	"flag"
	"os"
	"time"

	"github.com/cofrap/cofrap-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gateway base URL
//	-t int      request timeout in seconds (0 = transport default)
//	-i int      status refresh interval in seconds
//	-f string   state file path
//
// os.Args is filtered through flagx.FilterArgs so the -c/-config flags owned
// by the JSON loader do not trip this flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-i", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.GatewayAddr, "a", cfg.GatewayAddr, "gateway base URL")
	fs.StringVar(&cfg.StateFile, "f", cfg.StateFile, "state file path")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	refreshInterval := fs.Int("i", int(cfg.StatusRefreshInterval.Seconds()), "status refresh interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.StatusRefreshInterval = time.Duration(*refreshInterval) * time.Second
}
