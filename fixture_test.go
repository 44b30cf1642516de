package launchpad_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xraph/launchpad"
	"github.com/xraph/launchpad/asset"
	"github.com/xraph/launchpad/asset/memory"
	"github.com/xraph/launchpad/clock"
	"github.com/xraph/launchpad/store"
	memstore "github.com/xraph/launchpad/store/memory"
	"github.com/xraph/launchpad/types"
)

const (
	owner   types.Account = "owner"
	custody types.Account = "custody"
	alice   types.Account = "alice"
	bob     types.Account = "bob"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func at(sec int) time.Time { return t0.Add(time.Duration(sec) * time.Second) }

// testConfig is the reference schedule: staking [t+60, t+120), sale
// [t+160, t+260), vesting from t+300 over 60s with a 10% cliff and a price
// of 10 purchase units per sale unit.
func testConfig(assets asset.Set) launchpad.Config {
	return launchpad.Config{
		Name:    "test sale",
		Owner:   owner,
		Custody: custody,
		Assets:  assets,
		StakingWindow: launchpad.Window{
			Start: at(60),
			End:   at(120),
		},
		StakingVolume: launchpad.VolumeRange{
			Min: types.Units(100),
			Max: types.Units(10000),
		},
		StakingTiers: []types.Amount{types.Units(100), types.Units(500), types.Units(1000)},
		SaleWindow: launchpad.Window{
			Start: at(160),
			End:   at(260),
		},
		SalePrice:           types.Units(10),
		SaleRatioTiers:      []types.Amount{types.Units(1), types.Units(2), types.Units(4)},
		VestingStart:        at(300),
		VestingPeriod:       60 * time.Second,
		VestingInitialRatio: types.MustParseAmount("0.1"),
	}
}

type fixture struct {
	ctx   context.Context
	lp    *launchpad.Launchpad
	clk   *clock.Mock
	store *memstore.Store

	stake *memory.Token
	sale  *memory.Token
	pay   *memory.Token
}

func newTokens() (stake, sale, pay *memory.Token) {
	return memory.New("STAKE"), memory.New("SALE"), memory.New("PAY")
}

func newFixture(t *testing.T, opts ...launchpad.Option) *fixture {
	t.Helper()
	return newCustomFixture(t, nil, opts...)
}

// newCustomFixture is newFixture with a setup hook that may rewrite the
// config before construction and return a store to use instead of f.store.
func newCustomFixture(t *testing.T, setup func(f *fixture, cfg *launchpad.Config) store.Store, opts ...launchpad.Option) *fixture {
	t.Helper()

	stake, sale, pay := newTokens()
	f := &fixture{
		ctx:   context.Background(),
		clk:   clock.NewMock(t0),
		store: memstore.New(),
		stake: stake,
		sale:  sale,
		pay:   pay,
	}

	cfg := testConfig(asset.Set{Staking: stake, Sale: sale, Purchase: pay})
	var s store.Store = f.store
	if setup != nil {
		if custom := setup(f, &cfg); custom != nil {
			s = custom
		}
	}
	opts = append([]launchpad.Option{launchpad.WithClock(f.clk)}, opts...)

	lp, err := launchpad.New(cfg, s, opts...)
	require.NoError(t, err)
	require.NoError(t, lp.Start(f.ctx))
	t.Cleanup(func() { _ = lp.Stop() })
	f.lp = lp

	require.NoError(t, sale.Mint(owner, types.Units(200000)))
	sale.Approve(owner, custody, types.MaxAmount())
	f.fund(t, alice, bob)
	return f
}

// fund gives each participant 5000 staking units and 100000 purchase units
// and approves the custody account for both.
func (f *fixture) fund(t *testing.T, accounts ...types.Account) {
	t.Helper()
	for _, a := range accounts {
		require.NoError(t, f.stake.Mint(a, types.Units(5000)))
		require.NoError(t, f.pay.Mint(a, types.Units(100000)))
		f.stake.Approve(a, custody, types.MaxAmount())
		f.pay.Approve(a, custody, types.MaxAmount())
	}
}

func (f *fixture) set(sec int) { f.clk.Set(at(sec)) }

func balance(t *testing.T, tok *memory.Token, holder types.Account) types.Amount {
	t.Helper()
	b, err := tok.BalanceOf(context.Background(), holder)
	require.NoError(t, err)
	return b
}

func requireAmount(t *testing.T, want string, got types.Amount) {
	t.Helper()
	require.Equal(t, types.MustParseAmount(want).String(), got.String())
}

// buy runs the happy path up to a purchase of paid purchase units by
// participant after staking locked units. The clock ends at t+200.
func (f *fixture) buy(t *testing.T, participant types.Account, locked, paid uint64) {
	t.Helper()
	f.set(90)
	require.NoError(t, f.lp.Stake(f.ctx, participant, types.Units(locked)))
	f.set(150)
	require.NoError(t, f.lp.Unstake(f.ctx, participant, participant))
	f.set(200)
	require.NoError(t, f.lp.Participate(f.ctx, participant, types.Units(paid)))
}
