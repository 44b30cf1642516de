package launchpad

import (
	"context"
	"fmt"

	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/types"
)

// ──────────────────────────────────────────────────
// Sale
// ──────────────────────────────────────────────────

// DepositInventory adds amount of the sale asset to the inventory. Only the
// owner may deposit; deposits are accepted in any phase.
func (l *Launchpad) DepositInventory(ctx context.Context, caller types.Account, amount types.Amount) error {
	return l.exec(ctx, OpDeposit, caller, func(tx *txn) error {
		if caller != l.cfg.Owner {
			return ErrUnauthorized
		}
		if amount.IsZero() {
			return ErrZeroAmount
		}

		prev, err := tx.inventory()
		if err != nil {
			return err
		}
		next := prev.Clone()
		if next.Deposited, err = next.Deposited.Add(amount); err != nil {
			return overflow("inventory deposited", err)
		}

		if err := tx.saveInventory(next, prev); err != nil {
			return err
		}
		entry, err := tx.record(journal.KindDeposit, caller, caller, l.cfg.Assets.Sale, amount, types.Zero())
		if err != nil {
			return err
		}
		if err := tx.pull(l.cfg.Assets.Sale, caller, amount); err != nil {
			return err
		}

		tx.after(func(ctx context.Context) {
			l.logger.Info("inventory deposited",
				"launchpad_id", l.id.String(),
				"amount", amount.String(),
				"deposited", next.Deposited.String(),
			)
			l.plugins.EmitInventoryDeposited(ctx, entry, next)
		})
		return nil
	})
}

// Participate spends purchaseAmount of the purchase asset on sale units at
// SalePrice. The participant must have unstaked, stay within the tier cap,
// and the inventory must cover the units; otherwise nothing changes.
func (l *Launchpad) Participate(ctx context.Context, participant types.Account, purchaseAmount types.Amount) error {
	return l.exec(ctx, OpParticipate, participant, func(tx *txn) error {
		if err := l.cfg.require(OpParticipate, tx.now); err != nil {
			return err
		}
		if purchaseAmount.IsZero() {
			return ErrZeroAmount
		}

		prevPos, err := tx.position(participant)
		if err != nil {
			return err
		}
		if !prevPos.Unlocked {
			return ErrStillStaked
		}

		saleAmount, err := purchaseAmount.Div(l.cfg.SalePrice)
		if err != nil {
			return overflow("sale amount", err)
		}
		if saleAmount.IsZero() {
			return fmt.Errorf("%w: %s buys no sale units at price %s", ErrZeroAmount, purchaseAmount, l.cfg.SalePrice)
		}

		limit, err := l.cfg.MaxPurchase(prevPos.LockedVolume, l.mode)
		if err != nil {
			return err
		}
		purchased, err := prevPos.PurchasedAmount.Add(saleAmount)
		if err != nil {
			return overflow("purchased amount", err)
		}
		if purchased.GreaterThan(limit) {
			return fmt.Errorf("%w: %s would hold %s, cap %s", ErrAllocationExceeded, participant, purchased, limit)
		}

		prevInv, err := tx.inventory()
		if err != nil {
			return err
		}
		if saleAmount.GreaterThan(prevInv.Available()) {
			return fmt.Errorf("%w: %s requested, %s available", ErrSoldOut, saleAmount, prevInv.Available())
		}

		nextInv := prevInv.Clone()
		if nextInv.Sold, err = nextInv.Sold.Add(saleAmount); err != nil {
			return overflow("inventory sold", err)
		}
		if nextInv.Proceeds, err = nextInv.Proceeds.Add(purchaseAmount); err != nil {
			return overflow("inventory proceeds", err)
		}
		nextPos := prevPos.Clone()
		nextPos.PurchasedAmount = purchased

		if err := tx.savePosition(nextPos, prevPos); err != nil {
			return err
		}
		if err := tx.saveInventory(nextInv, prevInv); err != nil {
			return err
		}
		entry, err := tx.record(journal.KindPurchase, participant, participant, l.cfg.Assets.Sale, saleAmount, purchaseAmount)
		if err != nil {
			return err
		}
		if err := tx.pull(l.cfg.Assets.Purchase, participant, purchaseAmount); err != nil {
			return err
		}

		tx.after(func(ctx context.Context) {
			l.logger.Debug("purchase committed",
				"launchpad_id", l.id.String(),
				"account", participant,
				"paid", purchaseAmount.String(),
				"amount", saleAmount.String(),
				"sold", nextInv.Sold.String(),
			)
			l.plugins.EmitPurchased(ctx, entry, nextPos)
		})
		return nil
	})
}
