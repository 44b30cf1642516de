package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/xraph/launchpad"
	"github.com/xraph/launchpad/id"
	"github.com/xraph/launchpad/inventory"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/position"
	lpstore "github.com/xraph/launchpad/store"
	"github.com/xraph/launchpad/types"
)

// Collection name constants.
const (
	colPositions   = "launchpad_positions"
	colInventories = "launchpad_inventories"
	colJournal     = "launchpad_journal"
)

// compile-time interface check
var _ lpstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all launchpad collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("launchpad/mongo: migrate %s indexes: %w", col, err)
		}
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
	var m positionModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"launchpad_id": launchpadID.String(), "account": account.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, launchpad.ErrPositionNotFound
		}
		return nil, fmt.Errorf("launchpad/mongo: get position: %w", err)
	}
	return fromPositionModel(&m)
}

func (s *Store) SavePosition(ctx context.Context, p *position.Position) error {
	m := toPositionModel(p)

	set := bson.M{
		"_id":              m.ID,
		"launchpad_id":     m.LaunchpadID,
		"account":          m.Account,
		"locked_volume":    m.LockedVolume,
		"purchased_amount": m.PurchasedAmount,
		"released_amount":  m.ReleasedAmount,
		"unlocked":         m.Unlocked,
		"staked_at":        m.StakedAt,
		"created_at":       m.CreatedAt,
		"updated_at":       m.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if m.UnlockedAt != nil {
		set["unlocked_at"] = *m.UnlockedAt
	} else {
		update["$unset"] = bson.M{"unlocked_at": ""}
	}

	_, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"launchpad_id": m.LaunchpadID, "account": m.Account}).
		SetUpdate(update).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("launchpad/mongo: save position: %w", err)
	}
	return nil
}

func (s *Store) DeletePosition(ctx context.Context, launchpadID id.LaunchpadID, account types.Account) error {
	_, err := s.mdb.NewDelete((*positionModel)(nil)).
		Filter(bson.M{"launchpad_id": launchpadID.String(), "account": account.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("launchpad/mongo: delete position: %w", err)
	}
	return nil
}

func (s *Store) ListPositions(ctx context.Context, launchpadID id.LaunchpadID, opts position.ListOpts) ([]*position.Position, error) {
	var models []positionModel

	filter := bson.M{"launchpad_id": launchpadID.String()}
	if opts.Unlocked != nil {
		filter["unlocked"] = *opts.Unlocked
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: 1}, {Key: "account", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("launchpad/mongo: list positions: %w", err)
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
	var m inventoryModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": launchpadID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, launchpad.ErrInventoryNotFound
		}
		return nil, fmt.Errorf("launchpad/mongo: get inventory: %w", err)
	}
	return fromInventoryModel(&m)
}

func (s *Store) SaveInventory(ctx context.Context, inv *inventory.Inventory) error {
	m := toInventoryModel(inv)

	_, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.LaunchpadID}).
		SetUpdate(bson.M{"$set": bson.M{
			"_id":                m.LaunchpadID,
			"deposited":          m.Deposited,
			"sold":               m.Sold,
			"reclaimed":          m.Reclaimed,
			"proceeds":           m.Proceeds,
			"proceeds_withdrawn": m.ProceedsWithdrawn,
			"created_at":         m.CreatedAt,
			"updated_at":         m.UpdatedAt,
		}}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("launchpad/mongo: save inventory: %w", err)
	}
	return nil
}

// ==================== Journal Store ====================

func (s *Store) AppendEntry(ctx context.Context, e *journal.Entry) error {
	m := toEntryModel(e)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("launchpad/mongo: append entry: %w", err)
	}
	return nil
}

func (s *Store) RemoveEntry(ctx context.Context, entryID id.EntryID) error {
	_, err := s.mdb.NewDelete((*entryModel)(nil)).
		Filter(bson.M{"_id": entryID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("launchpad/mongo: remove entry: %w", err)
	}
	return nil
}

func (s *Store) ListEntries(ctx context.Context, launchpadID id.LaunchpadID, opts journal.ListOpts) ([]*journal.Entry, error) {
	var models []entryModel

	filter := bson.M{"launchpad_id": launchpadID.String()}
	if opts.Account != "" {
		filter["account"] = opts.Account
	}
	if opts.Kind != "" {
		filter["kind"] = string(opts.Kind)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "at", Value: 1}, {Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("launchpad/mongo: list entries: %w", err)
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

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all launchpad collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colPositions: {
			{
				Keys:    bson.D{{Key: "launchpad_id", Value: 1}, {Key: "account", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "launchpad_id", Value: 1}, {Key: "unlocked", Value: 1}}},
			{Keys: bson.D{{Key: "launchpad_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colInventories: {},
		colJournal: {
			{Keys: bson.D{{Key: "launchpad_id", Value: 1}, {Key: "at", Value: 1}}},
			{Keys: bson.D{{Key: "launchpad_id", Value: 1}, {Key: "account", Value: 1}}},
			{Keys: bson.D{{Key: "launchpad_id", Value: 1}, {Key: "kind", Value: 1}}},
		},
	}
}
