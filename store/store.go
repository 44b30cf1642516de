package store

import (
	"context"

	"github.com/xraph/launchpad/id"
	"github.com/xraph/launchpad/inventory"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/position"
	"github.com/xraph/launchpad/types"
)

// Store is the unified storage interface for all Launchpad records.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts.
//
// Store methods are individually atomic. The launchpad engine serializes all
// writes for one launchpad, so backends need no cross-record transactions.
type Store interface {
	// Position methods
	GetPosition(ctx context.Context, launchpadID id.LaunchpadID, account types.Account) (*position.Position, error)
	SavePosition(ctx context.Context, p *position.Position) error
	DeletePosition(ctx context.Context, launchpadID id.LaunchpadID, account types.Account) error
	ListPositions(ctx context.Context, launchpadID id.LaunchpadID, opts position.ListOpts) ([]*position.Position, error)

	// Inventory methods
	GetInventory(ctx context.Context, launchpadID id.LaunchpadID) (*inventory.Inventory, error)
	SaveInventory(ctx context.Context, inv *inventory.Inventory) error

	// Journal methods
	AppendEntry(ctx context.Context, e *journal.Entry) error
	RemoveEntry(ctx context.Context, entryID id.EntryID) error
	ListEntries(ctx context.Context, launchpadID id.LaunchpadID, opts journal.ListOpts) ([]*journal.Entry, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
