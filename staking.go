package launchpad

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/launchpad/id"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/position"
	"github.com/xraph/launchpad/types"
)

// ──────────────────────────────────────────────────
// Staking
// ──────────────────────────────────────────────────

// Stake locks amount of the staking asset for participant during the staking
// window. The participant's cumulative locked volume must stay within
// StakingVolume; the asset is pulled with the allowance granted to the
// custody account. A first stake creates the position.
func (l *Launchpad) Stake(ctx context.Context, participant types.Account, amount types.Amount) error {
	return l.exec(ctx, OpStake, participant, func(tx *txn) error {
		if err := l.cfg.require(OpStake, tx.now); err != nil {
			return err
		}
		if amount.IsZero() {
			return ErrZeroAmount
		}

		prev, err := tx.position(participant)
		switch {
		case errors.Is(err, ErrPositionNotFound):
			prev = nil
		case err != nil:
			return err
		}

		var next *position.Position
		if prev == nil {
			next = &position.Position{
				Entity:      types.NewEntity(tx.now),
				ID:          id.NewPositionID(),
				LaunchpadID: l.id,
				Account:     participant,
				StakedAt:    tx.now,
			}
		} else {
			if prev.Unlocked {
				return ErrAlreadyUnstaked
			}
			next = prev.Clone()
		}

		locked, err := next.LockedVolume.Add(amount)
		if err != nil {
			return overflow("locked volume", err)
		}
		if !l.cfg.StakingVolume.Contains(locked) {
			return fmt.Errorf("%w: %s would total %s, allowed [%s, %s]",
				ErrVolumeOutOfRange, participant, locked, l.cfg.StakingVolume.Min, l.cfg.StakingVolume.Max)
		}
		next.LockedVolume = locked

		if err := tx.savePosition(next, prev); err != nil {
			return err
		}
		entry, err := tx.record(journal.KindStake, participant, participant, l.cfg.Assets.Staking, amount, types.Zero())
		if err != nil {
			return err
		}
		if err := tx.pull(l.cfg.Assets.Staking, participant, amount); err != nil {
			return err
		}

		tx.after(func(ctx context.Context) {
			l.logger.Debug("stake committed",
				"launchpad_id", l.id.String(),
				"account", participant,
				"amount", amount.String(),
				"locked_volume", locked.String(),
			)
			l.plugins.EmitStaked(ctx, entry, next)
		})
		return nil
	})
}

// Unstake returns the participant's full locked volume once the staking
// window has closed. Anyone may trigger it; the stake always goes back to
// the participant. The locked volume stays on the position so the tier cap
// keeps applying during the sale.
func (l *Launchpad) Unstake(ctx context.Context, caller, participant types.Account) error {
	return l.exec(ctx, OpUnstake, participant, func(tx *txn) error {
		if err := l.cfg.require(OpUnstake, tx.now); err != nil {
			return err
		}

		prev, err := tx.position(participant)
		if err != nil {
			return err
		}
		if prev.Unlocked {
			return ErrAlreadyUnstaked
		}

		next := prev.Clone()
		unlockedAt := tx.now
		next.Unlocked = true
		next.UnlockedAt = &unlockedAt

		if err := tx.savePosition(next, prev); err != nil {
			return err
		}
		entry, err := tx.record(journal.KindUnstake, participant, caller, l.cfg.Assets.Staking, next.LockedVolume, types.Zero())
		if err != nil {
			return err
		}
		if err := tx.push(l.cfg.Assets.Staking, participant, next.LockedVolume); err != nil {
			return err
		}

		tx.after(func(ctx context.Context) {
			l.logger.Debug("unstake committed",
				"launchpad_id", l.id.String(),
				"account", participant,
				"amount", next.LockedVolume.String(),
			)
			l.plugins.EmitUnstaked(ctx, entry, next)
		})
		return nil
	})
}
