package launchpad

import (
	"time"

	"github.com/xraph/launchpad/types"
)

// ReleasableAt returns the cumulative amount of a purchase that has vested
// at now: nothing before VestingStart, the initial ratio at VestingStart,
// then linear up to the full purchase at VestingStart+VestingPeriod.
//
// The result is monotonically non-decreasing in now and never exceeds
// purchased.
func (c *Config) ReleasableAt(purchased types.Amount, now time.Time) (types.Amount, error) {
	if purchased.IsZero() || now.Before(c.VestingStart) {
		return types.Zero(), nil
	}
	elapsed := now.Sub(c.VestingStart)
	if elapsed >= c.VestingPeriod {
		return purchased, nil
	}

	cliff, err := purchased.Mul(c.VestingInitialRatio)
	if err != nil {
		return types.Zero(), overflow("vesting cliff", err)
	}
	// rest is the exact complement of the cliff, so cliff+linear <= purchased
	// regardless of rounding.
	rest := purchased.SaturatingSub(cliff)
	linear, err := rest.MulDiv(
		types.BaseUnits(uint64(elapsed)),
		types.BaseUnits(uint64(c.VestingPeriod)),
	)
	if err != nil {
		return types.Zero(), overflow("vesting linear", err)
	}

	total, err := cliff.Add(linear)
	if err != nil {
		return types.Zero(), overflow("vesting total", err)
	}
	return total, nil
}
