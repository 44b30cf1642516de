package postgres

import (
	"fmt"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/launchpad/id"
	"github.com/xraph/launchpad/inventory"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/position"
	"github.com/xraph/launchpad/types"
)

// Amounts are stored as base-unit integer strings. NUMERIC(78,0) would hold
// them too, but TEXT round-trips through every driver without loss.

// ==================== Position models ====================

type positionModel struct {
	grove.BaseModel `grove:"table:launchpad_positions"`

	ID              string     `grove:"id,pk"`
	LaunchpadID     string     `grove:"launchpad_id"`
	Account         string     `grove:"account"`
	LockedVolume    string     `grove:"locked_volume"`
	PurchasedAmount string     `grove:"purchased_amount"`
	ReleasedAmount  string     `grove:"released_amount"`
	Unlocked        bool       `grove:"unlocked"`
	StakedAt        time.Time  `grove:"staked_at"`
	UnlockedAt      *time.Time `grove:"unlocked_at"`
	CreatedAt       time.Time  `grove:"created_at"`
	UpdatedAt       time.Time  `grove:"updated_at"`
}

func toPositionModel(p *position.Position) *positionModel {
	return &positionModel{
		ID:              p.ID.String(),
		LaunchpadID:     p.LaunchpadID.String(),
		Account:         p.Account.String(),
		LockedVolume:    p.LockedVolume.BaseUnits(),
		PurchasedAmount: p.PurchasedAmount.BaseUnits(),
		ReleasedAmount:  p.ReleasedAmount.BaseUnits(),
		Unlocked:        p.Unlocked,
		StakedAt:        p.StakedAt,
		UnlockedAt:      p.UnlockedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func fromPositionModel(m *positionModel) (*position.Position, error) {
	posID, err := id.ParsePositionID(m.ID)
	if err != nil {
		return nil, err
	}
	lpID, err := id.ParseLaunchpadID(m.LaunchpadID)
	if err != nil {
		return nil, err
	}

	var d amountDecoder
	p := &position.Position{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:              posID,
		LaunchpadID:     lpID,
		Account:         types.Account(m.Account),
		LockedVolume:    d.decode("locked_volume", m.LockedVolume),
		PurchasedAmount: d.decode("purchased_amount", m.PurchasedAmount),
		ReleasedAmount:  d.decode("released_amount", m.ReleasedAmount),
		Unlocked:        m.Unlocked,
		StakedAt:        m.StakedAt,
		UnlockedAt:      m.UnlockedAt,
	}
	if d.err != nil {
		return nil, d.err
	}
	return p, nil
}

// ==================== Inventory models ====================

type inventoryModel struct {
	grove.BaseModel `grove:"table:launchpad_inventories"`

	LaunchpadID       string    `grove:"launchpad_id,pk"`
	Deposited         string    `grove:"deposited"`
	Sold              string    `grove:"sold"`
	Reclaimed         string    `grove:"reclaimed"`
	Proceeds          string    `grove:"proceeds"`
	ProceedsWithdrawn string    `grove:"proceeds_withdrawn"`
	CreatedAt         time.Time `grove:"created_at"`
	UpdatedAt         time.Time `grove:"updated_at"`
}

func toInventoryModel(inv *inventory.Inventory) *inventoryModel {
	return &inventoryModel{
		LaunchpadID:       inv.LaunchpadID.String(),
		Deposited:         inv.Deposited.BaseUnits(),
		Sold:              inv.Sold.BaseUnits(),
		Reclaimed:         inv.Reclaimed.BaseUnits(),
		Proceeds:          inv.Proceeds.BaseUnits(),
		ProceedsWithdrawn: inv.ProceedsWithdrawn.BaseUnits(),
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
}

func fromInventoryModel(m *inventoryModel) (*inventory.Inventory, error) {
	lpID, err := id.ParseLaunchpadID(m.LaunchpadID)
	if err != nil {
		return nil, err
	}

	var d amountDecoder
	inv := &inventory.Inventory{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		LaunchpadID:       lpID,
		Deposited:         d.decode("deposited", m.Deposited),
		Sold:              d.decode("sold", m.Sold),
		Reclaimed:         d.decode("reclaimed", m.Reclaimed),
		Proceeds:          d.decode("proceeds", m.Proceeds),
		ProceedsWithdrawn: d.decode("proceeds_withdrawn", m.ProceedsWithdrawn),
	}
	if d.err != nil {
		return nil, d.err
	}
	return inv, nil
}

// ==================== Journal models ====================

type entryModel struct {
	grove.BaseModel `grove:"table:launchpad_journal"`

	ID          string    `grove:"id,pk"`
	LaunchpadID string    `grove:"launchpad_id"`
	Kind        string    `grove:"kind"`
	Account     string    `grove:"account"`
	Caller      string    `grove:"caller"`
	Asset       string    `grove:"asset"`
	Amount      string    `grove:"amount"`
	Counter     string    `grove:"counter"`
	At          time.Time `grove:"at"`
}

func toEntryModel(e *journal.Entry) *entryModel {
	return &entryModel{
		ID:          e.ID.String(),
		LaunchpadID: e.LaunchpadID.String(),
		Kind:        string(e.Kind),
		Account:     e.Account.String(),
		Caller:      e.Caller.String(),
		Asset:       e.Asset,
		Amount:      e.Amount.BaseUnits(),
		Counter:     e.Counter.BaseUnits(),
		At:          e.At,
	}
}

func fromEntryModel(m *entryModel) (*journal.Entry, error) {
	entryID, err := id.ParseEntryID(m.ID)
	if err != nil {
		return nil, err
	}
	lpID, err := id.ParseLaunchpadID(m.LaunchpadID)
	if err != nil {
		return nil, err
	}

	var d amountDecoder
	e := &journal.Entry{
		ID:          entryID,
		LaunchpadID: lpID,
		Kind:        journal.Kind(m.Kind),
		Account:     types.Account(m.Account),
		Caller:      types.Account(m.Caller),
		Asset:       m.Asset,
		Amount:      d.decode("amount", m.Amount),
		Counter:     d.decode("counter", m.Counter),
		At:          m.At,
	}
	if d.err != nil {
		return nil, d.err
	}
	return e, nil
}

// amountDecoder parses base-unit columns and keeps the first failure.
type amountDecoder struct {
	err error
}

func (d *amountDecoder) decode(column, s string) types.Amount {
	a, err := types.ParseBaseUnits(s)
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("launchpad/postgres: column %s: %w", column, err)
	}
	return a
}
