// Package latency provides the simulator's configurable timing knobs.
package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the two timing knobs the pipeline and RAM treat as fixed
// constants elsewhere: RAM write latency and the control-hazard flush
// penalty charged on a taken/redirected branch.
type Config struct {
	// RAMWriteLatency is the number of cycles RAM reports itself as waiting
	// after any in-range write, whether it hit or missed in the data cache.
	// Default: 2 cycles.
	RAMWriteLatency uint64 `json:"ram_write_latency"`

	// ControlHazardPenalty is the number of stall cycles charged when a
	// branch redirects the PC. Default: 2 cycles.
	ControlHazardPenalty uint64 `json:"control_hazard_penalty"`
}

// DefaultConfig returns a Config with the simulator's documented defaults.
func DefaultConfig() *Config {
	return &Config{
		RAMWriteLatency:      2,
		ControlHazardPenalty: 2,
	}
}

// LoadConfig loads a Config from a JSON file, starting from defaults so a
// partial file only overrides the fields it specifies.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that all latency values are usable.
func (c *Config) Validate() error {
	if c.RAMWriteLatency == 0 {
		return fmt.Errorf("ram_write_latency must be > 0")
	}
	if c.ControlHazardPenalty == 0 {
		return fmt.Errorf("control_hazard_penalty must be > 0")
	}
	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	return &Config{
		RAMWriteLatency:      c.RAMWriteLatency,
		ControlHazardPenalty: c.ControlHazardPenalty,
	}
}
