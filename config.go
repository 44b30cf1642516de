package launchpad

import (
	"fmt"
	"time"

	"github.com/xraph/launchpad/asset"
	"github.com/xraph/launchpad/types"
)

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.UTC().Format(time.RFC3339), w.End.UTC().Format(time.RFC3339))
}

// VolumeRange bounds a participant's cumulative stake, both ends inclusive.
type VolumeRange struct {
	Min types.Amount `json:"min"`
	Max types.Amount `json:"max"`
}

// Contains reports whether v lies within [Min, Max].
func (r VolumeRange) Contains(v types.Amount) bool {
	return !v.LessThan(r.Min) && !v.GreaterThan(r.Max)
}

// Config is the immutable schedule and economics of one launchpad.
//
// Amounts are 18-decimal fixed point. SalePrice is purchase units per sale
// unit; VestingInitialRatio is the fraction of a purchase released at
// VestingStart.
type Config struct {
	Name string `json:"name"`

	// Owner may deposit inventory and settle the sale.
	Owner types.Account `json:"owner"`
	// Custody is the account the launchpad holds assets under on the
	// external ledgers. Participants approve it as spender.
	Custody types.Account `json:"custody"`
	Assets  asset.Set     `json:"-"`

	StakingWindow Window         `json:"staking_window"`
	StakingVolume VolumeRange    `json:"staking_volume"`
	StakingTiers  []types.Amount `json:"staking_tiers"`

	SaleWindow     Window         `json:"sale_window"`
	SalePrice      types.Amount   `json:"sale_price"`
	SaleRatioTiers []types.Amount `json:"sale_ratio_tiers"`

	VestingStart        time.Time     `json:"vesting_start"`
	VestingPeriod       time.Duration `json:"vesting_period"`
	VestingInitialRatio types.Amount  `json:"vesting_initial_ratio"`
}

// VestingEnd returns the instant at which every purchase is fully releasable.
func (c *Config) VestingEnd() time.Time {
	return c.VestingStart.Add(c.VestingPeriod)
}

// Validate checks the construction invariants in a fixed order and returns
// the first violation as a *ConfigError.
func (c *Config) Validate() error {
	if !c.StakingWindow.Start.Before(c.StakingWindow.End) {
		return &ConfigError{Kind: ConfigStakingWindowOrder, Message: "staking start time must be earlier than end time"}
	}
	if !c.SaleWindow.Start.Before(c.SaleWindow.End) {
		return &ConfigError{Kind: ConfigSaleWindowOrder, Message: "sale start time must be earlier than end time"}
	}
	if c.StakingWindow.End.After(c.SaleWindow.Start) {
		return &ConfigError{Kind: ConfigStakingBeforeSale, Message: "staking end time must be earlier than sale start time"}
	}
	if c.SaleWindow.End.After(c.VestingStart) {
		return &ConfigError{Kind: ConfigSaleBeforeVesting, Message: "vesting start time must be later than sale end time"}
	}
	if !c.StakingVolume.Min.LessThan(c.StakingVolume.Max) {
		return &ConfigError{Kind: ConfigStakingVolumeOrder, Message: "staking volume max must be greater than min"}
	}
	if c.SalePrice.IsZero() {
		return &ConfigError{Kind: ConfigNonPositivePrice, Message: "sale price must be greater than zero"}
	}

	if len(c.StakingTiers) == 0 {
		return &ConfigError{Kind: ConfigTierOrder, Message: "at least one staking tier is required"}
	}
	for i := 1; i < len(c.StakingTiers); i++ {
		if !c.StakingTiers[i-1].LessThan(c.StakingTiers[i]) {
			return &ConfigError{
				Kind:    ConfigTierOrder,
				Message: fmt.Sprintf("staking tier %d (%s) must be greater than tier %d (%s)", i, c.StakingTiers[i], i-1, c.StakingTiers[i-1]),
			}
		}
	}
	if len(c.SaleRatioTiers) < len(c.StakingTiers) {
		return &ConfigError{
			Kind:    ConfigTierAlignment,
			Message: fmt.Sprintf("%d staking tiers need as many sale ratio tiers, got %d", len(c.StakingTiers), len(c.SaleRatioTiers)),
		}
	}

	if c.VestingInitialRatio.GreaterThan(types.One()) {
		return &ConfigError{Kind: ConfigVestingRatio, Message: "vesting initial ratio must not exceed 1"}
	}
	if c.VestingPeriod <= 0 {
		return &ConfigError{Kind: ConfigVestingPeriod, Message: "vesting period must be positive"}
	}

	if c.Owner.IsZero() || c.Custody.IsZero() {
		return &ConfigError{Kind: ConfigAccounts, Message: "owner and custody accounts are required"}
	}
	if c.Owner == c.Custody {
		return &ConfigError{Kind: ConfigAccounts, Message: "owner and custody accounts must differ"}
	}
	if !c.Assets.Complete() {
		return &ConfigError{Kind: ConfigAssets, Message: "staking, sale and purchase tokens are required"}
	}

	return nil
}

// clone copies the slices so callers cannot mutate a running launchpad.
func (c Config) clone() Config {
	c.StakingTiers = append([]types.Amount(nil), c.StakingTiers...)
	c.SaleRatioTiers = append([]types.Amount(nil), c.SaleRatioTiers...)
	return c
}
