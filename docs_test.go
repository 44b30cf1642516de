package launchpad_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/xraph/launchpad"
	"github.com/xraph/launchpad/asset"
	"github.com/xraph/launchpad/asset/memory"
	"github.com/xraph/launchpad/clock"
	memstore "github.com/xraph/launchpad/store/memory"
)

// TestDocumentationExamples verifies that the examples in the package
// documentation compile and behave as described.
func TestDocumentationExamples(t *testing.T) {
	t.Run("QuickStartExample", func(t *testing.T) {
		ctx := context.Background()
		t0 := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		clk := clock.NewMock(t0)

		stk, sal, pur := memory.New("STK"), memory.New("SAL"), memory.New("PUR")

		cfg := launchpad.Config{
			Name:    "Quick start",
			Owner:   "owner",
			Custody: "launchpad",
			Assets:  asset.Set{Staking: stk, Sale: sal, Purchase: pur},
			StakingWindow: launchpad.Window{
				Start: t0.Add(time.Minute),
				End:   t0.Add(2 * time.Minute),
			},
			StakingVolume: launchpad.VolumeRange{Min: launchpad.Units(100), Max: launchpad.Units(100000)},
			StakingTiers:  []launchpad.Amount{launchpad.Units(1000), launchpad.Units(5000)},
			SaleWindow: launchpad.Window{
				Start: t0.Add(3 * time.Minute),
				End:   t0.Add(4 * time.Minute),
			},
			SalePrice:           launchpad.MustParseAmount("0.5"),
			SaleRatioTiers:      []launchpad.Amount{launchpad.Units(1), launchpad.Units(3)},
			VestingStart:        t0.Add(5 * time.Minute),
			VestingPeriod:       time.Hour,
			VestingInitialRatio: launchpad.MustParseAmount("0.25"),
		}

		lp, err := launchpad.New(cfg, memstore.New(),
			launchpad.WithLogger(slog.Default()),
			launchpad.WithClock(clk),
		)
		if err != nil {
			t.Fatal(err)
		}
		if err := lp.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer lp.Stop()

		if err := stk.Mint("alice", launchpad.Units(1000)); err != nil {
			t.Fatal(err)
		}
		stk.Approve("alice", "launchpad", launchpad.Units(1000))

		clk.Set(t0.Add(90 * time.Second))
		if err := lp.Stake(ctx, "alice", launchpad.Units(1000)); err != nil {
			t.Fatal(err)
		}

		limit, err := lp.MaxPurchase(ctx, "alice")
		if err != nil {
			t.Fatal(err)
		}
		if want := launchpad.Units(1000); !limit.Equal(want) {
			t.Errorf("MaxPurchase: got %s, want %s", limit, want)
		}
	})

	t.Run("PhaseExample", func(t *testing.T) {
		t0 := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		cfg := launchpad.Config{
			StakingWindow: launchpad.Window{Start: t0, End: t0.Add(time.Hour)},
		}
		cfg.SaleWindow = launchpad.Window{Start: t0.Add(time.Hour), End: t0.Add(2 * time.Hour)}
		cfg.VestingStart = t0.Add(3 * time.Hour)

		if got := cfg.PhaseAt(t0.Add(time.Hour)); got != launchpad.PhaseSale {
			t.Errorf("PhaseAt(staking end): got %s, want %s", got, launchpad.PhaseSale)
		}
	})

	t.Run("AmountExamples", func(t *testing.T) {
		price := launchpad.MustParseAmount("0.5")
		units, err := launchpad.Units(10).Div(price)
		if err != nil {
			t.Fatal(err)
		}
		if got := units.String(); got != "20" {
			t.Errorf("10 / 0.5: got %s, want 20", got)
		}

		if _, err := launchpad.ParseAmount("1.0000000000000000001"); err == nil {
			t.Error("expected error for more than 18 decimals")
		}
	})
}
