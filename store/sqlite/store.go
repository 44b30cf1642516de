package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/launchpad"
	"github.com/xraph/launchpad/id"
	"github.com/xraph/launchpad/inventory"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/position"
	lpstore "github.com/xraph/launchpad/store"
	"github.com/xraph/launchpad/types"
)

// compile-time interface check
var _ lpstore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("launchpad/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("launchpad/sqlite: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Position Store ====================

func (s *Store) GetPosition(ctx context.Context, launchpadID id.LaunchpadID, account types.Account) (*position.Position, error) {
	m := new(positionModel)
	err := s.sdb.NewSelect(m).
		Where("launchpad_id = ?", launchpadID.String()).
		Where("account = ?", account.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, launchpad.ErrPositionNotFound
		}
		return nil, err
	}
	return fromPositionModel(m)
}

func (s *Store) SavePosition(ctx context.Context, p *position.Position) error {
	m := toPositionModel(p)
	_, err := s.sdb.NewInsert(m).
		OnConflict("(id) DO UPDATE").
		Set("locked_volume = EXCLUDED.locked_volume").
		Set("purchased_amount = EXCLUDED.purchased_amount").
		Set("released_amount = EXCLUDED.released_amount").
		Set("unlocked = EXCLUDED.unlocked").
		Set("unlocked_at = EXCLUDED.unlocked_at").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *Store) DeletePosition(ctx context.Context, launchpadID id.LaunchpadID, account types.Account) error {
	_, err := s.sdb.NewDelete((*positionModel)(nil)).
		Where("launchpad_id = ?", launchpadID.String()).
		Where("account = ?", account.String()).
		Exec(ctx)
	return err
}

func (s *Store) ListPositions(ctx context.Context, launchpadID id.LaunchpadID, opts position.ListOpts) ([]*position.Position, error) {
	var models []positionModel
	q := s.sdb.NewSelect(&models).Where("launchpad_id = ?", launchpadID.String())

	if opts.Unlocked != nil {
		q = q.Where("unlocked = ?", *opts.Unlocked)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC, account ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*position.Position, len(models))
	for i := range models {
		p, err := fromPositionModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

// ==================== Inventory Store ====================

func (s *Store) GetInventory(ctx context.Context, launchpadID id.LaunchpadID) (*inventory.Inventory, error) {
	m := new(inventoryModel)
	err := s.sdb.NewSelect(m).
		Where("launchpad_id = ?", launchpadID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, launchpad.ErrInventoryNotFound
		}
		return nil, err
	}
	return fromInventoryModel(m)
}

func (s *Store) SaveInventory(ctx context.Context, inv *inventory.Inventory) error {
	m := toInventoryModel(inv)
	_, err := s.sdb.NewInsert(m).
		OnConflict("(launchpad_id) DO UPDATE").
		Set("deposited = EXCLUDED.deposited").
		Set("sold = EXCLUDED.sold").
		Set("reclaimed = EXCLUDED.reclaimed").
		Set("proceeds = EXCLUDED.proceeds").
		Set("proceeds_withdrawn = EXCLUDED.proceeds_withdrawn").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// ==================== Journal Store ====================

func (s *Store) AppendEntry(ctx context.Context, e *journal.Entry) error {
	m := toEntryModel(e)
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) RemoveEntry(ctx context.Context, entryID id.EntryID) error {
	_, err := s.sdb.NewDelete((*entryModel)(nil)).
		Where("id = ?", entryID.String()).
		Exec(ctx)
	return err
}

func (s *Store) ListEntries(ctx context.Context, launchpadID id.LaunchpadID, opts journal.ListOpts) ([]*journal.Entry, error) {
	var models []entryModel
	q := s.sdb.NewSelect(&models).Where("launchpad_id = ?", launchpadID.String())

	if opts.Account != "" {
		q = q.Where("account = ?", opts.Account)
	}
	if opts.Kind != "" {
		q = q.Where("kind = ?", string(opts.Kind))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	// TypeIDs are time-ordered and break ties within one instant.
	q = q.OrderExpr("at ASC, id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*journal.Entry, len(models))
	for i := range models {
		e, err := fromEntryModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

// ==================== Helpers ====================

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
