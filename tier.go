package launchpad

import (
	"fmt"
	"sort"

	"github.com/xraph/launchpad/types"
)

// TierMode selects how a tier's sale ratio turns into a purchase cap.
type TierMode string

const (
	// TierScaled caps purchases at LockedVolume * SaleRatioTiers[i].
	TierScaled TierMode = "scaled"
	// TierFlat caps purchases at SaleRatioTiers[i] regardless of volume.
	TierFlat TierMode = "flat"
)

// ParseTierMode accepts "scaled", "flat" or "" (scaled).
func ParseTierMode(s string) (TierMode, error) {
	switch TierMode(s) {
	case "", TierScaled:
		return TierScaled, nil
	case TierFlat:
		return TierFlat, nil
	default:
		return "", &ConfigError{Kind: ConfigTierMode, Message: fmt.Sprintf("unknown tier mode %q", s)}
	}
}

// TierIndex returns the greatest i with StakingTiers[i] <= locked. ok is
// false when locked is below the first threshold.
func (c *Config) TierIndex(locked types.Amount) (i int, ok bool) {
	n := sort.Search(len(c.StakingTiers), func(i int) bool {
		return c.StakingTiers[i].GreaterThan(locked)
	})
	if n == 0 {
		return 0, false
	}
	return n - 1, true
}

// MaxPurchase returns the cap on cumulative sale units for a position with
// the given locked volume. Below the first tier the cap is zero.
func (c *Config) MaxPurchase(locked types.Amount, mode TierMode) (types.Amount, error) {
	i, ok := c.TierIndex(locked)
	if !ok {
		return types.Zero(), nil
	}
	ratio := c.SaleRatioTiers[i]

	if mode == TierFlat {
		return ratio, nil
	}
	limit, err := locked.Mul(ratio)
	if err != nil {
		return types.Zero(), overflow("tier cap", err)
	}
	return limit, nil
}
