// Package config loads runtime settings for the COFRAP console.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the console client.
//
// Fields:
//   - GatewayAddr: base URL of the OpenFaaS gateway hosting the identity
//     functions.
//   - RequestTimeout: per-request timeout; zero keeps transport defaults.
//   - StatusRefreshInterval: how often the dashboard watch view rederives
//     the account status.
//   - GatewayCheckInterval: how often the client probes gateway
//     reachability for the prompt's online/offline indicator.
//   - StateFile: path of the sqlite file holding the persisted session flag.
type Config struct {
	GatewayAddr           string
	RequestTimeout        time.Duration
	StatusRefreshInterval time.Duration
	GatewayCheckInterval  time.Duration
	StateFile             string
}

// LoadDefaults populates c with sensible defaults. The COFRAP_GATEWAY
// environment variable overrides the built-in gateway address, mirroring the
// deployment-time configuration of the original front-end.
func (c *Config) LoadDefaults() {
	c.GatewayAddr = "http://127.0.0.1:8089"
	if env := os.Getenv("COFRAP_GATEWAY"); env != "" {
		c.GatewayAddr = env
	}
	c.RequestTimeout = 0
	c.StatusRefreshInterval = time.Second
	c.GatewayCheckInterval = 15 * time.Second
	c.StateFile = "cofrap.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a JSON file (if given) and command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
