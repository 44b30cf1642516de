package launchpad_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xraph/launchpad"
	"github.com/xraph/launchpad/asset"
	memstore "github.com/xraph/launchpad/store/memory"
	"github.com/xraph/launchpad/types"
)

func testAssets() asset.Set {
	stake, sale, pay := newTokens()
	return asset.Set{Staking: stake, Sale: sale, Purchase: pay}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *launchpad.Config)
		kind   launchpad.ConfigErrorKind
	}{
		{"staking window reversed", func(c *launchpad.Config) {
			c.StakingWindow = launchpad.Window{Start: at(120), End: at(60)}
		}, launchpad.ConfigStakingWindowOrder},
		{"empty staking window", func(c *launchpad.Config) {
			c.StakingWindow.End = c.StakingWindow.Start
		}, launchpad.ConfigStakingWindowOrder},
		{"sale window reversed", func(c *launchpad.Config) {
			c.SaleWindow = launchpad.Window{Start: at(260), End: at(160)}
		}, launchpad.ConfigSaleWindowOrder},
		{"sale overlaps staking", func(c *launchpad.Config) {
			c.SaleWindow.Start = at(100)
		}, launchpad.ConfigStakingBeforeSale},
		{"vesting before sale end", func(c *launchpad.Config) {
			c.VestingStart = at(250)
		}, launchpad.ConfigSaleBeforeVesting},
		{"volume max below min", func(c *launchpad.Config) {
			c.StakingVolume = launchpad.VolumeRange{Min: types.Units(100), Max: types.Units(10)}
		}, launchpad.ConfigStakingVolumeOrder},
		{"zero price", func(c *launchpad.Config) {
			c.SalePrice = types.Zero()
		}, launchpad.ConfigNonPositivePrice},
		{"no tiers", func(c *launchpad.Config) {
			c.StakingTiers = nil
		}, launchpad.ConfigTierOrder},
		{"tiers not ascending", func(c *launchpad.Config) {
			c.StakingTiers = []types.Amount{types.Units(500), types.Units(100)}
		}, launchpad.ConfigTierOrder},
		{"missing ratio tier", func(c *launchpad.Config) {
			c.SaleRatioTiers = c.SaleRatioTiers[:2]
		}, launchpad.ConfigTierAlignment},
		{"cliff above one", func(c *launchpad.Config) {
			c.VestingInitialRatio = types.MustParseAmount("1.5")
		}, launchpad.ConfigVestingRatio},
		{"zero vesting period", func(c *launchpad.Config) {
			c.VestingPeriod = 0
		}, launchpad.ConfigVestingPeriod},
		{"missing owner", func(c *launchpad.Config) {
			c.Owner = ""
		}, launchpad.ConfigAccounts},
		{"owner is custody", func(c *launchpad.Config) {
			c.Custody = c.Owner
		}, launchpad.ConfigAccounts},
		{"missing token", func(c *launchpad.Config) {
			c.Assets.Purchase = nil
		}, launchpad.ConfigAssets},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(testAssets())
			tt.mutate(&cfg)

			lp, err := launchpad.New(cfg, memstore.New())
			require.Nil(t, lp)
			require.ErrorIs(t, err, launchpad.ErrConfiguration)

			var cerr *launchpad.ConfigError
			require.ErrorAs(t, err, &cerr)
			require.Equal(t, tt.kind, cerr.Kind)
		})
	}
}

func TestConfigValidationOrder(t *testing.T) {
	cfg := testConfig(testAssets())
	cfg.StakingWindow = launchpad.Window{Start: at(120), End: at(60)}
	cfg.SalePrice = types.Zero()

	var cerr *launchpad.ConfigError
	require.ErrorAs(t, cfg.Validate(), &cerr)
	require.Equal(t, launchpad.ConfigStakingWindowOrder, cerr.Kind)
	require.Equal(t, "staking start time must be earlier than end time", cerr.Message)
}

func TestConfigIsCopied(t *testing.T) {
	cfg := testConfig(testAssets())
	lp, err := launchpad.New(cfg, memstore.New())
	require.NoError(t, err)

	cfg.StakingTiers[0] = types.Units(1)
	got := lp.Config()
	requireAmount(t, "100", got.StakingTiers[0])

	got.SaleRatioTiers[0] = types.Units(99)
	requireAmount(t, "1", lp.Config().SaleRatioTiers[0])
}

func TestPhaseAt(t *testing.T) {
	cfg := testConfig(testAssets())

	tests := []struct {
		sec  int
		want launchpad.Phase
	}{
		{0, launchpad.PhaseBeforeStaking},
		{60, launchpad.PhaseStaking},
		{119, launchpad.PhaseStaking},
		{120, launchpad.PhaseBetweenStakingAndSale},
		{160, launchpad.PhaseSale},
		{259, launchpad.PhaseSale},
		{260, launchpad.PhaseAfterSalePreVesting},
		{300, launchpad.PhaseVesting},
		{100000, launchpad.PhaseVesting},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			require.Equal(t, tt.want, cfg.PhaseAt(at(tt.sec)))
		})
	}

	require.True(t, launchpad.PhaseStaking.Before(launchpad.PhaseSale))
	require.False(t, launchpad.PhaseVesting.Before(launchpad.PhaseSale))
}

func TestMaxPurchase(t *testing.T) {
	cfg := testConfig(testAssets())

	tests := []struct {
		locked string
		tier   int
		ok     bool
		scaled string
		flat   string
	}{
		{"0", 0, false, "0", "0"},
		{"99.99", 0, false, "0", "0"},
		{"100", 0, true, "100", "1"},
		{"499", 0, true, "499", "1"},
		{"500", 1, true, "1000", "2"},
		{"750", 1, true, "1500", "2"},
		{"1000", 2, true, "4000", "4"},
		{"10000", 2, true, "40000", "4"},
	}

	for _, tt := range tests {
		t.Run(tt.locked, func(t *testing.T) {
			locked := types.MustParseAmount(tt.locked)

			tier, ok := cfg.TierIndex(locked)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.Equal(t, tt.tier, tier)
			}

			scaled, err := cfg.MaxPurchase(locked, launchpad.TierScaled)
			require.NoError(t, err)
			requireAmount(t, tt.scaled, scaled)

			flat, err := cfg.MaxPurchase(locked, launchpad.TierFlat)
			require.NoError(t, err)
			requireAmount(t, tt.flat, flat)
		})
	}
}

func TestFlatTierModeCapsPurchases(t *testing.T) {
	f := newFixture(t, launchpad.WithTierMode(launchpad.TierFlat))
	require.Equal(t, launchpad.TierFlat, f.lp.TierMode())
	require.NoError(t, f.lp.DepositInventory(f.ctx, owner, types.Units(100000)))

	// Tier 2 flat cap is 4 sale units, i.e. 40 purchase units.
	f.buy(t, alice, 1000, 40)
	require.ErrorIs(t, f.lp.Participate(f.ctx, alice, types.Units(10)), launchpad.ErrAllocationExceeded)
}

func TestParseTierMode(t *testing.T) {
	mode, err := launchpad.ParseTierMode("")
	require.NoError(t, err)
	require.Equal(t, launchpad.TierScaled, mode)

	mode, err = launchpad.ParseTierMode("flat")
	require.NoError(t, err)
	require.Equal(t, launchpad.TierFlat, mode)

	_, err = launchpad.ParseTierMode("stepped")
	require.ErrorIs(t, err, launchpad.ErrConfiguration)
}

func TestFileConfigRoundTrip(t *testing.T) {
	cfg := testConfig(testAssets())
	fc := launchpad.ToFileConfig(cfg, launchpad.TierFlat)

	require.Equal(t, "2026-03-01T12:01:00Z", fc.StakingStart)
	require.Equal(t, "1m0s", fc.VestingPeriod)
	require.Equal(t, "0.1", fc.VestingInitialRatio)
	require.Equal(t, []string{"100", "500", "1000"}, fc.StakingTiers)

	back, err := fc.Config(cfg.Assets)
	require.NoError(t, err)
	require.NoError(t, back.Validate())
	require.True(t, back.StakingWindow.Start.Equal(cfg.StakingWindow.Start))
	require.Equal(t, cfg.VestingPeriod, back.VestingPeriod)
	require.Equal(t, cfg.SalePrice.String(), back.SalePrice.String())

	opts, err := fc.Options()
	require.NoError(t, err)
	lp, err := launchpad.New(back, memstore.New(), opts...)
	require.NoError(t, err)
	require.Equal(t, launchpad.TierFlat, lp.TierMode())
}

func TestFileConfigReportsFirstBadField(t *testing.T) {
	fc := launchpad.ToFileConfig(testConfig(testAssets()), launchpad.TierScaled)
	fc.SaleStart = "tomorrow"
	fc.SalePrice = "ten"

	_, err := fc.Config(testAssets())
	require.Error(t, err)
	require.Contains(t, err.Error(), "sale_start")

	fc = launchpad.ToFileConfig(testConfig(testAssets()), launchpad.TierScaled)
	fc.VestingPeriod = "a while"
	_, err = fc.Config(testAssets())
	require.ErrorContains(t, err, "vesting_period")
}

func TestVestingZeroCliff(t *testing.T) {
	cfg := testConfig(testAssets())
	cfg.VestingInitialRatio = types.Zero()
	cfg.VestingPeriod = 100 * time.Second

	purchased := types.Units(1000)
	got, err := cfg.ReleasableAt(purchased, cfg.VestingStart)
	require.NoError(t, err)
	require.True(t, got.IsZero())

	got, err = cfg.ReleasableAt(purchased, cfg.VestingStart.Add(25*time.Second))
	require.NoError(t, err)
	requireAmount(t, "250", got)
}
