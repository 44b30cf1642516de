package position

import (
	"time"

	"github.com/xraph/launchpad/id"
	"github.com/xraph/launchpad/types"
)

// Position is a participant's record: stake, purchases and vesting payouts.
// It is created on first stake and never deleted.
type Position struct {
	types.Entity
	ID              id.PositionID  `json:"id"`
	LaunchpadID     id.LaunchpadID `json:"launchpad_id"`
	Account         types.Account  `json:"account"`
	LockedVolume    types.Amount   `json:"locked_volume"`
	PurchasedAmount types.Amount   `json:"purchased_amount"`
	ReleasedAmount  types.Amount   `json:"released_amount"`
	Unlocked        bool           `json:"unlocked"`
	StakedAt        time.Time      `json:"staked_at"`
	UnlockedAt      *time.Time     `json:"unlocked_at,omitempty"`
}

// Outstanding returns the purchased amount not yet released.
func (p *Position) Outstanding() types.Amount {
	return p.PurchasedAmount.SaturatingSub(p.ReleasedAmount)
}

// Clone returns a deep copy suitable for staging changes.
func (p *Position) Clone() *Position {
	c := *p
	if p.UnlockedAt != nil {
		t := *p.UnlockedAt
		c.UnlockedAt = &t
	}
	return &c
}
