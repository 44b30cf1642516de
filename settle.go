package launchpad

import (
	"context"

	"github.com/xraph/launchpad/inventory"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/types"
)

// ──────────────────────────────────────────────────
// Owner settlement
// ──────────────────────────────────────────────────

// WithdrawProceeds pays the owner the purchase asset collected by the sale
// and not yet withdrawn. It is available once the sale window has closed.
func (l *Launchpad) WithdrawProceeds(ctx context.Context, caller types.Account) (types.Amount, error) {
	return l.settle(ctx, OpWithdrawProceeds, caller, func(next *inventory.Inventory) (types.Amount, error) {
		due := next.Proceeds.SaturatingSub(next.ProceedsWithdrawn)
		if due.IsZero() {
			return due, nil
		}
		var err error
		if next.ProceedsWithdrawn, err = next.ProceedsWithdrawn.Add(due); err != nil {
			return types.Zero(), overflow("proceeds withdrawn", err)
		}
		return due, nil
	})
}

// ReclaimUnsold returns the unsold sale inventory to the owner once the sale
// window has closed. Sold inventory stays in custody for vesting releases.
func (l *Launchpad) ReclaimUnsold(ctx context.Context, caller types.Account) (types.Amount, error) {
	return l.settle(ctx, OpReclaimUnsold, caller, func(next *inventory.Inventory) (types.Amount, error) {
		due := next.Available()
		if due.IsZero() {
			return due, nil
		}
		var err error
		if next.Reclaimed, err = next.Reclaimed.Add(due); err != nil {
			return types.Zero(), overflow("inventory reclaimed", err)
		}
		return due, nil
	})
}

// settle applies an owner withdrawal computed by take on a staged copy of
// the inventory and pushes the result to the owner.
func (l *Launchpad) settle(ctx context.Context, op Operation, caller types.Account, take func(next *inventory.Inventory) (types.Amount, error)) (types.Amount, error) {
	var (
		kind  = journal.KindWithdrawProceeds
		token = l.cfg.Assets.Purchase
		paid  types.Amount
	)
	if op == OpReclaimUnsold {
		kind = journal.KindReclaimUnsold
		token = l.cfg.Assets.Sale
	}

	err := l.exec(ctx, op, caller, func(tx *txn) error {
		if caller != l.cfg.Owner {
			return ErrUnauthorized
		}
		if err := l.cfg.require(op, tx.now); err != nil {
			return err
		}

		prev, err := tx.inventory()
		if err != nil {
			return err
		}
		next := prev.Clone()
		due, err := take(next)
		if err != nil {
			return err
		}
		if due.IsZero() {
			return ErrNothingToWithdraw
		}

		if err := tx.saveInventory(next, prev); err != nil {
			return err
		}
		entry, err := tx.record(kind, caller, caller, token, due, types.Zero())
		if err != nil {
			return err
		}
		if err := tx.push(token, caller, due); err != nil {
			return err
		}
		paid = due

		tx.after(func(ctx context.Context) {
			l.logger.Info("sale settled",
				"launchpad_id", l.id.String(),
				"op", op,
				"asset", token.Symbol(),
				"amount", due.String(),
			)
			l.plugins.EmitSettled(ctx, entry, next)
		})
		return nil
	})
	if err != nil {
		return types.Zero(), err
	}
	return paid, nil
}
