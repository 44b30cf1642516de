package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/xraph/launchpad"
	"github.com/xraph/launchpad/types"
)

func (a *app) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a schedule against the construction rules",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, _, err := a.load()
			if err != nil {
				var cerr *launchpad.ConfigError
				if errors.As(err, &cerr) {
					fmt.Fprintf(c.OutOrStdout(), "invalid (%s): %s\n", cerr.Kind, cerr.Message)
				}
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "%s: ok\n", cfg.Name)
			return nil
		},
	}
}

func (a *app) scheduleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print phase boundaries and tier table",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, mode, err := a.load()
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			summary := tablewriter.NewWriter(out)
			summary.Header("Property", "Value")
			rows := [][]string{
				{"name", cfg.Name},
				{"staking", cfg.StakingWindow.String()},
				{"staking volume", fmt.Sprintf("[%s, %s]", cfg.StakingVolume.Min, cfg.StakingVolume.Max)},
				{"sale", cfg.SaleWindow.String()},
				{"sale price", cfg.SalePrice.String()},
				{"vesting", fmtTime(cfg.VestingStart) + " .. " + fmtTime(cfg.VestingEnd())},
				{"initial release", cfg.VestingInitialRatio.String()},
				{"tier mode", string(mode)},
			}
			if err := summary.Bulk(rows); err != nil {
				return err
			}
			if err := summary.Render(); err != nil {
				return err
			}

			tiers := tablewriter.NewWriter(out)
			tiers.Header("Tier", "Min Locked", "Ratio")
			for i, threshold := range cfg.StakingTiers {
				if err := tiers.Append([]string{fmt.Sprint(i), threshold.String(), cfg.SaleRatioTiers[i].String()}); err != nil {
					return err
				}
			}
			return tiers.Render()
		},
	}
}

func (a *app) phaseCommand() *cobra.Command {
	var at string
	c := &cobra.Command{
		Use:   "phase",
		Short: "Print the phase in effect at an instant",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, _, err := a.load()
			if err != nil {
				return err
			}
			now, err := parseAt(at)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), cfg.PhaseAt(now))
			return nil
		},
	}
	c.Flags().StringVar(&at, "at", "", "RFC3339 instant (default now)")
	return c
}

func (a *app) allocationCommand() *cobra.Command {
	var locked string
	c := &cobra.Command{
		Use:   "allocation",
		Short: "Print the purchase cap for a locked staking volume",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, mode, err := a.load()
			if err != nil {
				return err
			}
			volume, err := types.ParseAmount(locked)
			if err != nil {
				return fmt.Errorf("--locked: %w", err)
			}
			limit, err := cfg.MaxPurchase(volume, mode)
			if err != nil {
				return err
			}
			tier := "none"
			if i, ok := cfg.TierIndex(volume); ok {
				tier = fmt.Sprint(i)
			}
			fmt.Fprintf(c.OutOrStdout(), "tier %s: max purchase %s\n", tier, limit)
			return nil
		},
	}
	c.Flags().StringVar(&locked, "locked", "", "locked staking volume")
	_ = c.MarkFlagRequired("locked")
	return c
}

func (a *app) vestingCommand() *cobra.Command {
	var purchased, at string
	c := &cobra.Command{
		Use:   "vesting",
		Short: "Print the cumulative vested amount at an instant",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, _, err := a.load()
			if err != nil {
				return err
			}
			amount, err := types.ParseAmount(purchased)
			if err != nil {
				return fmt.Errorf("--purchased: %w", err)
			}
			now, err := parseAt(at)
			if err != nil {
				return err
			}
			vested, err := cfg.ReleasableAt(amount, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "%s of %s vested at %s\n", vested, amount, fmtTime(now))
			return nil
		},
	}
	c.Flags().StringVar(&purchased, "purchased", "", "purchased sale amount")
	c.Flags().StringVar(&at, "at", "", "RFC3339 instant (default now)")
	_ = c.MarkFlagRequired("purchased")
	return c
}

func parseAt(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at: %w", err)
	}
	return t, nil
}

func fmtTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }
