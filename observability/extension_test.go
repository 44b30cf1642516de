package observability

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/xraph/launchpad"
	"github.com/xraph/launchpad/asset"
	"github.com/xraph/launchpad/inventory"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/position"
	"github.com/xraph/launchpad/types"
)

func TestMetricsExtensionCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	ext := NewMetricsExtension(NewPrometheusFactory(reg))
	ctx := context.Background()

	stake := &journal.Entry{Kind: journal.KindStake, Amount: types.Units(1000)}
	purchase := &journal.Entry{Kind: journal.KindPurchase, Amount: types.Units(2000), Counter: types.Units(20000)}
	pos := &position.Position{}

	if err := ext.OnStaked(ctx, stake, pos); err != nil {
		t.Fatal(err)
	}
	if err := ext.OnStaked(ctx, stake, pos); err != nil {
		t.Fatal(err)
	}
	if err := ext.OnPurchased(ctx, purchase, pos); err != nil {
		t.Fatal(err)
	}
	if err := ext.OnSettled(ctx, &journal.Entry{Kind: journal.KindReclaimUnsold, Amount: types.Units(5)}, &inventory.Inventory{}); err != nil {
		t.Fatal(err)
	}

	rejections := []error{
		&launchpad.PhaseError{Op: launchpad.OpStake},
		fmt.Errorf("%w: more", launchpad.ErrSoldOut),
		&launchpad.TransferError{Op: launchpad.OpParticipate, Asset: "PAY", Err: asset.ErrInsufficientAllowance},
		errors.New("store down"),
	}
	for _, cause := range rejections {
		if err := ext.OnRejected(ctx, "stake", "alice", cause); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"staked", ext.Staked.(prometheus.Counter), 2},
		{"purchases", ext.Purchases.(prometheus.Counter), 1},
		{"reclaimed", ext.UnsoldReclaimed.(prometheus.Counter), 5},
		{"proceeds", ext.ProceedsWithdrawn.(prometheus.Counter), 0},
		{"rejected", ext.Rejected.(prometheus.Counter), 4},
		{"rejected phase", ext.RejectedPhase.(prometheus.Counter), 1},
		{"rejected admission", ext.RejectedAdmission.(prometheus.Counter), 1},
		{"rejected transfer", ext.RejectedTransfer.(prometheus.Counter), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if n := testutil.CollectAndCount(reg, "launchpad_stake_amount"); n != 1 {
		t.Errorf("stake amount histogram: got %d series, want 1", n)
	}
}

func TestPrometheusFactoryReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	f := NewPrometheusFactory(reg)

	a := f.Counter("launchpad.stake.count")
	b := f.Counter("launchpad.stake.count")
	a.Inc()
	b.Inc()

	if got := testutil.ToFloat64(a.(prometheus.Counter)); got != 2 {
		t.Errorf("shared counter: got %v, want 2", got)
	}
	if promName("launchpad.stake.count") != "launchpad_stake_count" {
		t.Errorf("promName: got %q", promName("launchpad.stake.count"))
	}
}
