package config

import (
	"encoding/json"
	"os"

	"github.com/cofrap/cofrap-cli/internal/flagx"
	"github.com/cofrap/cofrap-cli/internal/timex"
)

// jsonConfig is a DTO used only for JSON unmarshalling. Durations accept
// either "3s"-style strings or integer nanoseconds via timex.Duration.
type jsonConfig struct {
	GatewayAddr           string         `json:"gateway_addr"`
	RequestTimeout        timex.Duration `json:"request_timeout"`
	StatusRefreshInterval timex.Duration `json:"status_refresh_interval"`
	GatewayCheckInterval  timex.Duration `json:"gateway_check_interval"`
	StateFile             string         `json:"state_file"`
}

// parseJSON overlays Config with values from the JSON file named by the
// -c/-config flag. Absent flag means no JSON is loaded. Only fields present
// in the file override the defaults. Read or unmarshal errors panic, as a
// broken config file should stop startup.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.GatewayAddr != "" {
		cfg.GatewayAddr = jc.GatewayAddr
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StatusRefreshInterval.Duration != 0 {
		cfg.StatusRefreshInterval = jc.StatusRefreshInterval.Duration
	}
	if jc.GatewayCheckInterval.Duration != 0 {
		cfg.GatewayCheckInterval = jc.GatewayCheckInterval.Duration
	}
	if jc.StateFile != "" {
		cfg.StateFile = jc.StateFile
	}
}
