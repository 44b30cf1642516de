package journal

import (
	"time"

	"github.com/xraph/launchpad/id"
	"github.com/xraph/launchpad/types"
)

// Kind names the operation an entry records.
type Kind string

const (
	KindStake            Kind = "stake"
	KindUnstake          Kind = "unstake"
	KindDeposit          Kind = "deposit"
	KindPurchase         Kind = "purchase"
	KindRelease          Kind = "release"
	KindWithdrawProceeds Kind = "withdraw_proceeds"
	KindReclaimUnsold    Kind = "reclaim_unsold"
)

// Entry is an append-only record of one committed operation.
//
// Amount is denominated in Asset. Counter carries the other leg where one
// exists: the purchase asset paid for a purchase.
type Entry struct {
	ID          id.EntryID     `json:"id"`
	LaunchpadID id.LaunchpadID `json:"launchpad_id"`
	Kind        Kind           `json:"kind"`
	Account     types.Account  `json:"account"`
	Caller      types.Account  `json:"caller"`
	Asset       string         `json:"asset"`
	Amount      types.Amount   `json:"amount"`
	Counter     types.Amount   `json:"counter"`
	At          time.Time      `json:"at"`
}
