package extension

import (
	"time"

	"github.com/xraph/launchpad"
)

// Config holds the Launchpad extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.launchpad" or "launchpad" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// LaunchpadID resumes an existing launchpad identity. When empty a new
	// identity is generated on every boot.
	LaunchpadID string `json:"launchpad_id" mapstructure:"launchpad_id" yaml:"launchpad_id"`

	// PluginTimeout bounds a single plugin hook call (default: 5s).
	PluginTimeout time.Duration `json:"plugin_timeout" mapstructure:"plugin_timeout" yaml:"plugin_timeout"`

	// Sale is the staking, sale and vesting schedule.
	Sale launchpad.FileConfig `json:"sale" mapstructure:"sale" yaml:"sale"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		PluginTimeout: 5 * time.Second,
		Sale: launchpad.FileConfig{
			TierMode: string(launchpad.TierScaled),
		},
	}
}
