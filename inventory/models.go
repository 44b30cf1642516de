package inventory

import (
	"github.com/xraph/launchpad/id"
	"github.com/xraph/launchpad/types"
)

// Inventory is the launchpad-wide sale account. One exists per launchpad.
//
// Invariants: Sold + Reclaimed <= Deposited, ProceedsWithdrawn <= Proceeds.
type Inventory struct {
	types.Entity
	LaunchpadID       id.LaunchpadID `json:"launchpad_id"`
	Deposited         types.Amount   `json:"deposited"`
	Sold              types.Amount   `json:"sold"`
	Reclaimed         types.Amount   `json:"reclaimed"`
	Proceeds          types.Amount   `json:"proceeds"`
	ProceedsWithdrawn types.Amount   `json:"proceeds_withdrawn"`
}

// Available returns sale asset deposited but neither sold nor reclaimed.
func (i *Inventory) Available() types.Amount {
	return i.Deposited.SaturatingSub(i.Sold).SaturatingSub(i.Reclaimed)
}

// Clone returns a copy suitable for staging changes.
func (i *Inventory) Clone() *Inventory {
	c := *i
	return &c
}
