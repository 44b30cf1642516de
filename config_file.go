package launchpad

import (
	"fmt"
	"time"

	"github.com/xraph/launchpad/asset"
	"github.com/xraph/launchpad/types"
)

// FileConfig is the serializable form of Config. Amounts are human
// decimals ("1000", "0.1"), times are RFC3339 and the vesting period is a Go
// duration ("720h"). Tokens are not serializable and are supplied when
// converting.
type FileConfig struct {
	Name    string `json:"name" mapstructure:"name" yaml:"name"`
	Owner   string `json:"owner" mapstructure:"owner" yaml:"owner"`
	Custody string `json:"custody" mapstructure:"custody" yaml:"custody"`

	StakingStart     string   `json:"staking_start" mapstructure:"staking_start" yaml:"staking_start"`
	StakingEnd       string   `json:"staking_end" mapstructure:"staking_end" yaml:"staking_end"`
	StakingVolumeMin string   `json:"staking_volume_min" mapstructure:"staking_volume_min" yaml:"staking_volume_min"`
	StakingVolumeMax string   `json:"staking_volume_max" mapstructure:"staking_volume_max" yaml:"staking_volume_max"`
	StakingTiers     []string `json:"staking_tiers" mapstructure:"staking_tiers" yaml:"staking_tiers"`

	SaleStart      string   `json:"sale_start" mapstructure:"sale_start" yaml:"sale_start"`
	SaleEnd        string   `json:"sale_end" mapstructure:"sale_end" yaml:"sale_end"`
	SalePrice      string   `json:"sale_price" mapstructure:"sale_price" yaml:"sale_price"`
	SaleRatioTiers []string `json:"sale_ratio_tiers" mapstructure:"sale_ratio_tiers" yaml:"sale_ratio_tiers"`

	VestingStart        string `json:"vesting_start" mapstructure:"vesting_start" yaml:"vesting_start"`
	VestingPeriod       string `json:"vesting_period" mapstructure:"vesting_period" yaml:"vesting_period"`
	VestingInitialRatio string `json:"vesting_initial_ratio" mapstructure:"vesting_initial_ratio" yaml:"vesting_initial_ratio"`

	// TierMode is "scaled" (default) or "flat".
	TierMode string `json:"tier_mode,omitempty" mapstructure:"tier_mode" yaml:"tier_mode,omitempty"`
}

// Config converts f into a Config bound to assets. It reports malformed
// fields but does not validate ordering; New does that.
func (f FileConfig) Config(assets asset.Set) (Config, error) {
	p := &fileParser{}

	cfg := Config{
		Name:    f.Name,
		Owner:   types.Account(f.Owner),
		Custody: types.Account(f.Custody),
		Assets:  assets,
		StakingWindow: Window{
			Start: p.time("staking_start", f.StakingStart),
			End:   p.time("staking_end", f.StakingEnd),
		},
		StakingVolume: VolumeRange{
			Min: p.amount("staking_volume_min", f.StakingVolumeMin),
			Max: p.amount("staking_volume_max", f.StakingVolumeMax),
		},
		StakingTiers: p.amounts("staking_tiers", f.StakingTiers),
		SaleWindow: Window{
			Start: p.time("sale_start", f.SaleStart),
			End:   p.time("sale_end", f.SaleEnd),
		},
		SalePrice:           p.amount("sale_price", f.SalePrice),
		SaleRatioTiers:      p.amounts("sale_ratio_tiers", f.SaleRatioTiers),
		VestingStart:        p.time("vesting_start", f.VestingStart),
		VestingPeriod:       p.duration("vesting_period", f.VestingPeriod),
		VestingInitialRatio: p.amount("vesting_initial_ratio", f.VestingInitialRatio),
	}
	if p.err != nil {
		return Config{}, p.err
	}
	return cfg, nil
}

// Options returns the engine options implied by f.
func (f FileConfig) Options() ([]Option, error) {
	mode, err := ParseTierMode(f.TierMode)
	if err != nil {
		return nil, err
	}
	return []Option{WithTierMode(mode)}, nil
}

// fileParser keeps the first parse error so Config can read top to bottom.
type fileParser struct {
	err error
}

func (p *fileParser) fail(field string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("launchpad: config field %s: %w", field, err)
	}
}

func (p *fileParser) time(field, s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		p.fail(field, err)
	}
	return t
}

func (p *fileParser) duration(field, s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		p.fail(field, err)
	}
	return d
}

func (p *fileParser) amount(field, s string) types.Amount {
	a, err := types.ParseAmount(s)
	if err != nil {
		p.fail(field, err)
	}
	return a
}

func (p *fileParser) amounts(field string, ss []string) []types.Amount {
	out := make([]types.Amount, 0, len(ss))
	for i, s := range ss {
		out = append(out, p.amount(fmt.Sprintf("%s[%d]", field, i), s))
	}
	return out
}

// ToFileConfig renders cfg in its serializable form.
func ToFileConfig(cfg Config, mode TierMode) FileConfig {
	str := func(as []types.Amount) []string {
		out := make([]string, len(as))
		for i, a := range as {
			out[i] = a.String()
		}
		return out
	}
	return FileConfig{
		Name:                cfg.Name,
		Owner:               cfg.Owner.String(),
		Custody:             cfg.Custody.String(),
		StakingStart:        cfg.StakingWindow.Start.UTC().Format(time.RFC3339),
		StakingEnd:          cfg.StakingWindow.End.UTC().Format(time.RFC3339),
		StakingVolumeMin:    cfg.StakingVolume.Min.String(),
		StakingVolumeMax:    cfg.StakingVolume.Max.String(),
		StakingTiers:        str(cfg.StakingTiers),
		SaleStart:           cfg.SaleWindow.Start.UTC().Format(time.RFC3339),
		SaleEnd:             cfg.SaleWindow.End.UTC().Format(time.RFC3339),
		SalePrice:           cfg.SalePrice.String(),
		SaleRatioTiers:      str(cfg.SaleRatioTiers),
		VestingStart:        cfg.VestingStart.UTC().Format(time.RFC3339),
		VestingPeriod:       cfg.VestingPeriod.String(),
		VestingInitialRatio: cfg.VestingInitialRatio.String(),
		TierMode:            string(mode),
	}
}
