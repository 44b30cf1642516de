package launchpad

import (
	"fmt"
	"time"
)

// Phase is the launchpad epoch derived from the clock and the Config windows.
type Phase string

const (
	PhaseBeforeStaking         Phase = "before_staking"
	PhaseStaking               Phase = "staking"
	PhaseBetweenStakingAndSale Phase = "between_staking_and_sale"
	PhaseSale                  Phase = "sale"
	PhaseAfterSalePreVesting   Phase = "after_sale_pre_vesting"
	PhaseVesting               Phase = "vesting"
)

var phaseOrder = map[Phase]int{
	PhaseBeforeStaking:         0,
	PhaseStaking:               1,
	PhaseBetweenStakingAndSale: 2,
	PhaseSale:                  3,
	PhaseAfterSalePreVesting:   4,
	PhaseVesting:               5,
}

func (p Phase) String() string { return string(p) }

// Before reports whether p precedes q in the schedule.
func (p Phase) Before(q Phase) bool { return phaseOrder[p] < phaseOrder[q] }

// Operation names a mutating entry point for phase gating and reporting.
type Operation string

const (
	OpStake            Operation = "stake"
	OpUnstake          Operation = "unstake"
	OpDeposit          Operation = "deposit"
	OpParticipate      Operation = "participate"
	OpRelease          Operation = "release"
	OpWithdrawProceeds Operation = "withdraw_proceeds"
	OpReclaimUnsold    Operation = "reclaim_unsold"
)

func (o Operation) String() string { return string(o) }

// PhaseAt maps an instant onto the schedule. Boundaries belong to the later
// phase: at StakingWindow.End the phase is already BetweenStakingAndSale.
func (c *Config) PhaseAt(now time.Time) Phase {
	switch {
	case now.Before(c.StakingWindow.Start):
		return PhaseBeforeStaking
	case now.Before(c.StakingWindow.End):
		return PhaseStaking
	case now.Before(c.SaleWindow.Start):
		return PhaseBetweenStakingAndSale
	case now.Before(c.SaleWindow.End):
		return PhaseSale
	case now.Before(c.VestingStart):
		return PhaseAfterSalePreVesting
	default:
		return PhaseVesting
	}
}

// require checks op against the schedule at now. Operations without a window
// (deposit, release) always pass.
func (c *Config) require(op Operation, now time.Time) error {
	var (
		ok       bool
		required string
	)

	switch op {
	case OpStake:
		ok = c.StakingWindow.Contains(now)
		required = "staking window " + c.StakingWindow.String()
	case OpUnstake:
		ok = !now.Before(c.StakingWindow.End)
		required = fmt.Sprintf("staking window closed at %s", c.StakingWindow.End.UTC().Format(time.RFC3339))
	case OpParticipate:
		ok = c.SaleWindow.Contains(now)
		required = "sale window " + c.SaleWindow.String()
	case OpWithdrawProceeds, OpReclaimUnsold:
		ok = !now.Before(c.SaleWindow.End)
		required = fmt.Sprintf("sale window closed at %s", c.SaleWindow.End.UTC().Format(time.RFC3339))
	default:
		return nil
	}

	if ok {
		return nil
	}
	return &PhaseError{
		Op:       op,
		Required: required,
		Current:  c.PhaseAt(now),
		At:       now,
	}
}
