package extension

import (
	"time"

	"github.com/xraph/launchpad"
	"github.com/xraph/launchpad/asset"
	"github.com/xraph/launchpad/plugin"
	"github.com/xraph/launchpad/store"
)

// Option configures the Launchpad Forge extension.
type Option func(*Extension)

// WithStore sets the store for the launchpad engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithAssets binds the staking, sale and purchase tokens. They cannot be
// described in a config file and must be supplied in code.
func WithAssets(assets asset.Set) Option {
	return func(e *Extension) {
		e.assets = assets
	}
}

// WithLaunchpadOption passes a launchpad.Option through to the underlying engine.
func WithLaunchpadOption(opt launchpad.Option) Option {
	return func(e *Extension) {
		e.launchpadOpts = append(e.launchpadOpts, opt)
	}
}

// WithPlugin registers a launchpad plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.launchpadOpts = append(e.launchpadOpts, launchpad.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithSale sets the sale schedule programmatically.
func WithSale(sale launchpad.FileConfig) Option {
	return func(e *Extension) { e.config.Sale = sale }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

// WithPluginTimeout sets the per-hook plugin timeout.
func WithPluginTimeout(d time.Duration) Option {
	return func(e *Extension) { e.config.PluginTimeout = d }
}

// WithLaunchpadID resumes an existing launchpad identity.
func WithLaunchpadID(lpID string) Option {
	return func(e *Extension) { e.config.LaunchpadID = lpID }
}
