package launchpad

import (
	"context"

	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/types"
)

// ReleaseVestedTokens pays the beneficiary whatever has vested but not yet
// been released, and returns the amount paid. Anyone may call it; the
// payout always goes to the beneficiary. Nothing due is not an error.
func (l *Launchpad) ReleaseVestedTokens(ctx context.Context, caller, beneficiary types.Account) (types.Amount, error) {
	paid := types.Zero()

	err := l.exec(ctx, OpRelease, beneficiary, func(tx *txn) error {
		prev, err := tx.position(beneficiary)
		if err != nil {
			return err
		}

		vested, err := l.cfg.ReleasableAt(prev.PurchasedAmount, tx.now)
		if err != nil {
			return err
		}
		due := vested.SaturatingSub(prev.ReleasedAmount)
		if due.IsZero() {
			return nil
		}

		next := prev.Clone()
		if next.ReleasedAmount, err = next.ReleasedAmount.Add(due); err != nil {
			return overflow("released amount", err)
		}

		if err := tx.savePosition(next, prev); err != nil {
			return err
		}
		entry, err := tx.record(journal.KindRelease, beneficiary, caller, l.cfg.Assets.Sale, due, types.Zero())
		if err != nil {
			return err
		}
		if err := tx.push(l.cfg.Assets.Sale, beneficiary, due); err != nil {
			return err
		}
		paid = due

		tx.after(func(ctx context.Context) {
			l.logger.Debug("release committed",
				"launchpad_id", l.id.String(),
				"account", beneficiary,
				"caller", caller,
				"amount", due.String(),
				"released", next.ReleasedAmount.String(),
			)
			l.plugins.EmitReleased(ctx, entry, next)
		})
		return nil
	})
	if err != nil {
		return types.Zero(), err
	}
	return paid, nil
}
