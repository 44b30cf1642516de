// Package observability provides a metrics extension for Launchpad that
// records ledger event counts and amounts via a MetricFactory.
package observability

import (
	"context"
	"errors"

	"github.com/xraph/launchpad"
	"github.com/xraph/launchpad/inventory"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/plugin"
	"github.com/xraph/launchpad/position"
	"github.com/xraph/launchpad/types"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin               = (*MetricsExtension)(nil)
	_ plugin.OnInit               = (*MetricsExtension)(nil)
	_ plugin.OnStaked             = (*MetricsExtension)(nil)
	_ plugin.OnUnstaked           = (*MetricsExtension)(nil)
	_ plugin.OnInventoryDeposited = (*MetricsExtension)(nil)
	_ plugin.OnPurchased          = (*MetricsExtension)(nil)
	_ plugin.OnSettled            = (*MetricsExtension)(nil)
	_ plugin.OnReleased           = (*MetricsExtension)(nil)
	_ plugin.OnRejected           = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records launchpad activity metrics.
// Register it as a Launchpad plugin to automatically track sale metrics.
// Amount histograms observe whole units as float64 and are approximate.
type MetricsExtension struct {
	factory MetricFactory

	// Staking metrics
	Staked        Counter
	Unstaked      Counter
	StakeAmount   Histogram
	UnstakeAmount Histogram

	// Sale metrics
	InventoryDeposited Counter
	Purchases          Counter
	PurchaseAmount     Histogram
	PurchasePaid       Histogram
	ProceedsWithdrawn  Counter
	UnsoldReclaimed    Counter

	// Vesting metrics
	Releases      Counter
	ReleaseAmount Histogram

	// Rejection metrics
	Rejected          Counter
	RejectedPhase     Counter
	RejectedAdmission Counter
	RejectedTransfer  Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use NewPrometheusFactory outside forge, or app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Staking metrics
		Staked:        factory.Counter("launchpad.stake.count"),
		Unstaked:      factory.Counter("launchpad.unstake.count"),
		StakeAmount:   factory.Histogram("launchpad.stake.amount"),
		UnstakeAmount: factory.Histogram("launchpad.unstake.amount"),

		// Sale metrics
		InventoryDeposited: factory.Counter("launchpad.inventory.deposited"),
		Purchases:          factory.Counter("launchpad.purchase.count"),
		PurchaseAmount:     factory.Histogram("launchpad.purchase.amount"),
		PurchasePaid:       factory.Histogram("launchpad.purchase.paid"),
		ProceedsWithdrawn:  factory.Counter("launchpad.settle.proceeds_withdrawn"),
		UnsoldReclaimed:    factory.Counter("launchpad.settle.unsold_reclaimed"),

		// Vesting metrics
		Releases:      factory.Counter("launchpad.release.count"),
		ReleaseAmount: factory.Histogram("launchpad.release.amount"),

		// Rejection metrics
		Rejected:          factory.Counter("launchpad.rejected"),
		RejectedPhase:     factory.Counter("launchpad.rejected.phase"),
		RejectedAdmission: factory.Counter("launchpad.rejected.admission"),
		RejectedTransfer:  factory.Counter("launchpad.rejected.transfer"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Staking hooks
// ──────────────────────────────────────────────────

// OnStaked implements plugin.OnStaked.
func (m *MetricsExtension) OnStaked(_ context.Context, e *journal.Entry, _ *position.Position) error {
	m.Staked.Inc()
	m.StakeAmount.Observe(e.Amount.Float64())
	return nil
}

// OnUnstaked implements plugin.OnUnstaked.
func (m *MetricsExtension) OnUnstaked(_ context.Context, e *journal.Entry, _ *position.Position) error {
	m.Unstaked.Inc()
	m.UnstakeAmount.Observe(e.Amount.Float64())
	return nil
}

// ──────────────────────────────────────────────────
// Sale hooks
// ──────────────────────────────────────────────────

// OnInventoryDeposited implements plugin.OnInventoryDeposited.
func (m *MetricsExtension) OnInventoryDeposited(_ context.Context, e *journal.Entry, _ *inventory.Inventory) error {
	m.InventoryDeposited.Add(e.Amount.Float64())
	return nil
}

// OnPurchased implements plugin.OnPurchased.
func (m *MetricsExtension) OnPurchased(_ context.Context, e *journal.Entry, _ *position.Position) error {
	m.Purchases.Inc()
	m.PurchaseAmount.Observe(e.Amount.Float64())
	m.PurchasePaid.Observe(e.Counter.Float64())
	return nil
}

// OnSettled implements plugin.OnSettled.
func (m *MetricsExtension) OnSettled(_ context.Context, e *journal.Entry, _ *inventory.Inventory) error {
	switch e.Kind {
	case journal.KindWithdrawProceeds:
		m.ProceedsWithdrawn.Add(e.Amount.Float64())
	case journal.KindReclaimUnsold:
		m.UnsoldReclaimed.Add(e.Amount.Float64())
	}
	return nil
}

// ──────────────────────────────────────────────────
// Vesting hooks
// ──────────────────────────────────────────────────

// OnReleased implements plugin.OnReleased.
func (m *MetricsExtension) OnReleased(_ context.Context, e *journal.Entry, _ *position.Position) error {
	m.Releases.Inc()
	m.ReleaseAmount.Observe(e.Amount.Float64())
	return nil
}

// ──────────────────────────────────────────────────
// Failure hooks
// ──────────────────────────────────────────────────

// OnRejected implements plugin.OnRejected.
func (m *MetricsExtension) OnRejected(_ context.Context, _ string, _ types.Account, cause error) error {
	m.Rejected.Inc()
	switch {
	case launchpad.IsPhaseError(cause):
		m.RejectedPhase.Inc()
	case launchpad.IsAdmissionError(cause):
		m.RejectedAdmission.Inc()
	case errors.Is(cause, launchpad.ErrAssetTransfer):
		m.RejectedTransfer.Inc()
	}
	return nil
}
