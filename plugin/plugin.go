// Package plugin provides an extensible plugin system for Launchpad.
// Plugins can hook into lifecycle and ledger events to extend functionality.
//
// Event hooks fire only after an operation has committed, except OnRejected
// which fires after a failed operation has been rolled back.
package plugin

import (
	"context"

	"github.com/xraph/launchpad/inventory"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/position"
	"github.com/xraph/launchpad/types"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the launchpad starts.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, l interface{}) error
}

// OnShutdown is called when the launchpad stops.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Staking hooks
// ──────────────────────────────────────────────────

// OnStaked is called after a stake has been locked.
type OnStaked interface {
	Plugin
	OnStaked(ctx context.Context, e *journal.Entry, p *position.Position) error
}

// OnUnstaked is called after a locked volume has been returned.
type OnUnstaked interface {
	Plugin
	OnUnstaked(ctx context.Context, e *journal.Entry, p *position.Position) error
}

// ──────────────────────────────────────────────────
// Sale hooks
// ──────────────────────────────────────────────────

// OnInventoryDeposited is called after the owner adds sale inventory.
type OnInventoryDeposited interface {
	Plugin
	OnInventoryDeposited(ctx context.Context, e *journal.Entry, inv *inventory.Inventory) error
}

// OnPurchased is called after a participant buys sale units.
type OnPurchased interface {
	Plugin
	OnPurchased(ctx context.Context, e *journal.Entry, p *position.Position) error
}

// OnSettled is called after the owner withdraws proceeds or reclaims
// unsold inventory.
type OnSettled interface {
	Plugin
	OnSettled(ctx context.Context, e *journal.Entry, inv *inventory.Inventory) error
}

// ──────────────────────────────────────────────────
// Vesting hooks
// ──────────────────────────────────────────────────

// OnReleased is called after vested tokens have been paid out.
type OnReleased interface {
	Plugin
	OnReleased(ctx context.Context, e *journal.Entry, p *position.Position) error
}

// ──────────────────────────────────────────────────
// Failure hooks
// ──────────────────────────────────────────────────

// OnRejected is called when a mutating operation fails. The ledger state is
// already restored when it runs.
type OnRejected interface {
	Plugin
	OnRejected(ctx context.Context, op string, account types.Account, cause error) error
}
