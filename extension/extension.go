// Package extension provides the Forge extension adapter for Launchpad.
//
// It implements the forge.Extension interface to integrate Launchpad
// into a Forge application with DI registration and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.launchpad" or
// "launchpad" keys. Tokens are always supplied with WithAssets.
package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/launchpad"
	"github.com/xraph/launchpad/asset"
	"github.com/xraph/launchpad/id"
	"github.com/xraph/launchpad/store"
	"github.com/xraph/launchpad/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "launchpad"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Staged token sale with staking tiers and linear vesting"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Launchpad as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config        Config
	engine        *launchpad.Launchpad
	store         store.Store
	assets        asset.Set
	launchpadOpts []launchpad.Option
}

// New creates a new Launchpad Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Launchpad instance.
// This is nil until Register is called.
func (e *Extension) Engine() *launchpad.Launchpad { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the launchpad engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	eng, err := e.buildEngine()
	if err != nil {
		return err
	}
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*launchpad.Launchpad, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("launchpad: extension not initialized")
	}

	if err := e.engine.Start(ctx); err != nil {
		return err
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("launchpad: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildEngine converts the resolved config into a Launchpad.
func (e *Extension) buildEngine() (*launchpad.Launchpad, error) {
	if !e.assets.Complete() {
		return nil, errors.New("launchpad: extension requires staking, sale and purchase assets; use WithAssets")
	}

	cfg, err := e.config.Sale.Config(e.assets)
	if err != nil {
		return nil, err
	}

	opts, err := e.buildLaunchpadOpts()
	if err != nil {
		return nil, err
	}

	return launchpad.New(cfg, e.store, opts...)
}

// buildLaunchpadOpts constructs launchpad.Option values from the resolved config.
func (e *Extension) buildLaunchpadOpts() ([]launchpad.Option, error) {
	opts, err := e.config.Sale.Options()
	if err != nil {
		return nil, err
	}

	if e.config.DisableMigrate {
		opts = append(opts, launchpad.WithoutMigrate())
	}

	if e.config.PluginTimeout > 0 {
		opts = append(opts, launchpad.WithPluginTimeout(e.config.PluginTimeout))
	}

	if e.config.LaunchpadID != "" {
		lpID, err := id.ParseLaunchpadID(e.config.LaunchpadID)
		if err != nil {
			return nil, fmt.Errorf("launchpad: extension launchpad_id: %w", err)
		}
		opts = append(opts, launchpad.WithID(lpID))
	}

	// Append any pass-through launchpad options.
	opts = append(opts, e.launchpadOpts...)

	return opts, nil
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("launchpad: configuration is required but not found in config files; " +
				"ensure 'extensions.launchpad' or 'launchpad' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("launchpad: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("launchpad_id", e.config.LaunchpadID),
		forge.F("plugin_timeout", e.config.PluginTimeout),
		forge.F("sale_name", e.config.Sale.Name),
		forge.F("tier_mode", e.config.Sale.TierMode),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.launchpad" first (namespaced pattern).
	if cm.IsSet("extensions.launchpad") {
		if err := cm.Bind("extensions.launchpad", &cfg); err == nil {
			e.Logger().Debug("launchpad: loaded config from file",
				forge.F("key", "extensions.launchpad"),
			)
			return cfg, true
		}
		e.Logger().Warn("launchpad: failed to bind extensions.launchpad config",
			forge.F("error", "bind failed"),
		)
	}

	// Try top-level "launchpad" key.
	if cm.IsSet("launchpad") {
		if err := cm.Bind("launchpad", &cfg); err == nil {
			e.Logger().Debug("launchpad: loaded config from file",
				forge.F("key", "launchpad"),
			)
			return cfg, true
		}
		e.Logger().Warn("launchpad: failed to bind launchpad config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.PluginTimeout == 0 {
		cfg.PluginTimeout = defaults.PluginTimeout
	}
	if cfg.Sale.TierMode == "" {
		cfg.Sale.TierMode = defaults.Sale.TierMode
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic values fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	if yamlConfig.LaunchpadID == "" && programmaticConfig.LaunchpadID != "" {
		yamlConfig.LaunchpadID = programmaticConfig.LaunchpadID
	}
	if yamlConfig.PluginTimeout == 0 && programmaticConfig.PluginTimeout != 0 {
		yamlConfig.PluginTimeout = programmaticConfig.PluginTimeout
	}

	// The schedule is taken whole from one source, never field by field.
	if saleUnset(yamlConfig.Sale) {
		yamlConfig.Sale = programmaticConfig.Sale
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}

func saleUnset(f launchpad.FileConfig) bool {
	return f.StakingStart == "" && f.SaleStart == "" && f.VestingStart == ""
}
