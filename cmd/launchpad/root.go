package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xraph/launchpad"
	"github.com/xraph/launchpad/asset"
	"github.com/xraph/launchpad/asset/memory"
)

// settings are read from the environment; flags override them.
type settings struct {
	ConfigPath string `env:"LAUNCHPAD_CONFIG" envDefault:"launchpad.yaml"`
	LogLevel   string `env:"LAUNCHPAD_LOG_LEVEL" envDefault:"info"`
}

func parseSettings() (settings, error) {
	var s settings
	if err := env.Parse(&s); err != nil {
		return settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// app carries state shared by every subcommand.
type app struct {
	settings settings
	logger   *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "launchpad",
		Short:         "Inspect staged token sale schedules",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			s, err := parseSettings()
			if err != nil {
				return err
			}
			if c.Flags().Changed("config") {
				s.ConfigPath, _ = c.Flags().GetString("config")
			}
			a.settings = s

			var level slog.Level
			if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
				return fmt.Errorf("log level %q: %w", s.LogLevel, err)
			}
			a.logger = slog.New(slog.NewTextHandler(c.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.PersistentFlags().StringP("config", "f", "", "path to the YAML schedule (default $LAUNCHPAD_CONFIG or launchpad.yaml)")

	root.AddCommand(
		a.validateCommand(),
		a.scheduleCommand(),
		a.phaseCommand(),
		a.allocationCommand(),
		a.vestingCommand(),
	)

	return root
}

// loadFileConfig reads the YAML schedule at path.
func loadFileConfig(path string) (launchpad.FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return launchpad.FileConfig{}, fmt.Errorf("read config: %w", err)
	}
	var fc launchpad.FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return launchpad.FileConfig{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return fc, nil
}

// offlineAssets stands in for the real tokens. The CLI never moves funds.
func offlineAssets() asset.Set {
	return asset.Set{
		Staking:  memory.New("STAKE"),
		Sale:     memory.New("SALE"),
		Purchase: memory.New("PAY"),
	}
}

// load reads and validates the configured schedule.
func (a *app) load() (launchpad.Config, launchpad.TierMode, error) {
	fc, err := loadFileConfig(a.settings.ConfigPath)
	if err != nil {
		return launchpad.Config{}, "", err
	}
	mode, err := launchpad.ParseTierMode(fc.TierMode)
	if err != nil {
		return launchpad.Config{}, "", err
	}
	cfg, err := fc.Config(offlineAssets())
	if err != nil {
		return launchpad.Config{}, "", err
	}
	if err := cfg.Validate(); err != nil {
		return launchpad.Config{}, "", err
	}
	a.logger.Debug("schedule loaded",
		"path", a.settings.ConfigPath,
		"name", cfg.Name,
		"tier_mode", mode,
	)
	return cfg, mode, nil
}
