// Package audithook bridges Launchpad ledger events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import an
// audit backend directly. Callers inject a RecorderFunc adapter at wiring
// time.
package audithook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xraph/launchpad"
	"github.com/xraph/launchpad/inventory"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/plugin"
	"github.com/xraph/launchpad/position"
	"github.com/xraph/launchpad/types"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin               = (*Extension)(nil)
	_ plugin.OnStaked             = (*Extension)(nil)
	_ plugin.OnUnstaked           = (*Extension)(nil)
	_ plugin.OnInventoryDeposited = (*Extension)(nil)
	_ plugin.OnPurchased          = (*Extension)(nil)
	_ plugin.OnSettled            = (*Extension)(nil)
	_ plugin.OnReleased           = (*Extension)(nil)
	_ plugin.OnRejected           = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Launchpad ledger events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Staking hooks
// ──────────────────────────────────────────────────

// OnStaked implements plugin.OnStaked.
func (e *Extension) OnStaked(ctx context.Context, entry *journal.Entry, p *position.Position) error {
	return e.record(ctx, ActionStaked, SeverityInfo, OutcomeSuccess,
		ResourcePosition, p.ID.String(), CategoryStaking, nil,
		entryPairs(entry, "locked_volume", p.LockedVolume.String())...,
	)
}

// OnUnstaked implements plugin.OnUnstaked.
func (e *Extension) OnUnstaked(ctx context.Context, entry *journal.Entry, p *position.Position) error {
	return e.record(ctx, ActionUnstaked, SeverityInfo, OutcomeSuccess,
		ResourcePosition, p.ID.String(), CategoryStaking, nil,
		entryPairs(entry)...,
	)
}

// ──────────────────────────────────────────────────
// Sale hooks
// ──────────────────────────────────────────────────

// OnInventoryDeposited implements plugin.OnInventoryDeposited.
func (e *Extension) OnInventoryDeposited(ctx context.Context, entry *journal.Entry, inv *inventory.Inventory) error {
	return e.record(ctx, ActionInventoryDeposited, SeverityInfo, OutcomeSuccess,
		ResourceInventory, inv.LaunchpadID.String(), CategorySale, nil,
		entryPairs(entry, "deposited", inv.Deposited.String())...,
	)
}

// OnPurchased implements plugin.OnPurchased.
func (e *Extension) OnPurchased(ctx context.Context, entry *journal.Entry, p *position.Position) error {
	return e.record(ctx, ActionPurchased, SeverityInfo, OutcomeSuccess,
		ResourcePosition, p.ID.String(), CategorySale, nil,
		entryPairs(entry,
			"paid", entry.Counter.String(),
			"purchased_amount", p.PurchasedAmount.String(),
		)...,
	)
}

// OnSettled implements plugin.OnSettled.
func (e *Extension) OnSettled(ctx context.Context, entry *journal.Entry, inv *inventory.Inventory) error {
	action := ActionProceedsWithdrawn
	if entry.Kind == journal.KindReclaimUnsold {
		action = ActionUnsoldReclaimed
	}
	return e.record(ctx, action, SeverityInfo, OutcomeSuccess,
		ResourceInventory, inv.LaunchpadID.String(), CategorySettlement, nil,
		entryPairs(entry)...,
	)
}

// ──────────────────────────────────────────────────
// Vesting hooks
// ──────────────────────────────────────────────────

// OnReleased implements plugin.OnReleased.
func (e *Extension) OnReleased(ctx context.Context, entry *journal.Entry, p *position.Position) error {
	return e.record(ctx, ActionReleased, SeverityInfo, OutcomeSuccess,
		ResourcePosition, p.ID.String(), CategoryVesting, nil,
		entryPairs(entry, "released_amount", p.ReleasedAmount.String())...,
	)
}

// ──────────────────────────────────────────────────
// Failure hooks
// ──────────────────────────────────────────────────

// OnRejected implements plugin.OnRejected. Authorization failures are
// recorded as warnings, failed transfers as errors.
func (e *Extension) OnRejected(ctx context.Context, op string, account types.Account, cause error) error {
	severity := SeverityInfo
	switch {
	case errors.Is(cause, launchpad.ErrRollbackFailed):
		severity = SeverityCritical
	case errors.Is(cause, launchpad.ErrUnauthorized):
		severity = SeverityWarning
	case errors.Is(cause, launchpad.ErrAssetTransfer):
		severity = SeverityError
	case errors.Is(cause, launchpad.ErrArithmeticOverflow):
		severity = SeverityCritical
	}
	return e.record(ctx, ActionRejected, severity, OutcomeFailure,
		ResourceOperation, op, CategoryAccess, cause,
		"operation", op,
		"account", account.String(),
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// entryPairs flattens the common journal fields into key/value pairs.
func entryPairs(entry *journal.Entry, extra ...any) []any {
	kv := []any{
		"entry_id", entry.ID.String(),
		"launchpad_id", entry.LaunchpadID.String(),
		"account", entry.Account.String(),
		"caller", entry.Caller.String(),
		"asset", entry.Asset,
		"amount", entry.Amount.String(),
	}
	return append(kv, extra...)
}

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
