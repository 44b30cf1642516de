package launchpad

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/launchpad/asset"
	"github.com/xraph/launchpad/id"
	"github.com/xraph/launchpad/inventory"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/position"
	"github.com/xraph/launchpad/types"
)

// guardKey marks a context that is inside a mutating call of one launchpad.
// Token implementations that call back into the launchpad must propagate the
// context they were given, so the marker reaches the reentrant call.
type guardKey struct{ l *Launchpad }

// txn stages one mutating operation. Every store write registers an undo
// step; asset movements come last so a rejected transfer is undone by
// replaying the undo steps in reverse.
type txn struct {
	l    *Launchpad
	ctx  context.Context
	op   Operation
	now  time.Time
	undo []func(ctx context.Context) error
	post []func(ctx context.Context)
}

// exec runs fn under the exclusive side of mu. On error every staged write is
// restored and OnRejected fires; on success the post-commit hooks fire. Both
// run after the lock is released.
func (l *Launchpad) exec(ctx context.Context, op Operation, account types.Account, fn func(tx *txn) error) error {
	if ctx.Value(guardKey{l}) != nil {
		return ErrReentrantCall
	}

	tx, err := l.run(ctx, op, fn)
	if err != nil {
		l.logger.Debug("operation rejected",
			"launchpad_id", l.id.String(),
			"op", op,
			"account", account,
			"error", err,
		)
		l.plugins.EmitRejected(ctx, op.String(), account, err)
		return err
	}

	for _, f := range tx.post {
		f(ctx)
	}
	return nil
}

func (l *Launchpad) run(ctx context.Context, op Operation, fn func(tx *txn) error) (*txn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := &txn{
		l:   l,
		ctx: context.WithValue(ctx, guardKey{l}, struct{}{}),
		op:  op,
		now: l.clock.Now(),
	}
	if err := fn(tx); err != nil {
		if rerr := tx.rollback(ctx); rerr != nil {
			return nil, errors.Join(err, rerr)
		}
		return nil, err
	}
	return tx, nil
}

// rollback replays the undo steps newest first. Every step runs even when
// an earlier one fails; the failures are reported as one ErrRollbackFailed.
func (tx *txn) rollback(ctx context.Context) error {
	if len(tx.undo) == 0 {
		return nil
	}
	// Cancellation of the caller's context must not leave a half-restored
	// ledger behind.
	ctx = context.WithoutCancel(ctx)
	var failed []error
	for i := len(tx.undo) - 1; i >= 0; i-- {
		if err := tx.undo[i](ctx); err != nil {
			tx.l.logger.Error("rollback step failed",
				"launchpad_id", tx.l.id.String(),
				"op", tx.op,
				"error", err,
			)
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%w: %s: %d of %d steps: %w",
			ErrRollbackFailed, tx.op, len(failed), len(tx.undo), errors.Join(failed...))
	}
	tx.l.logger.Warn("operation rolled back",
		"launchpad_id", tx.l.id.String(),
		"op", tx.op,
		"steps", len(tx.undo),
	)
	return nil
}

// after queues fn to run once the operation has committed.
func (tx *txn) after(fn func(ctx context.Context)) {
	tx.post = append(tx.post, fn)
}

// ──────────────────────────────────────────────────
// Staged reads and writes
// ──────────────────────────────────────────────────

func (tx *txn) position(account types.Account) (*position.Position, error) {
	return tx.l.store.GetPosition(tx.ctx, tx.l.id, account)
}

func (tx *txn) inventory() (*inventory.Inventory, error) {
	inv, err := tx.l.store.GetInventory(tx.ctx, tx.l.id)
	if errors.Is(err, ErrInventoryNotFound) {
		return tx.l.newInventory(), nil
	}
	return inv, err
}

// savePosition persists next. prev is the stored record or nil when next
// is being created.
func (tx *txn) savePosition(next, prev *position.Position) error {
	next.Touch(tx.now)
	if err := tx.l.store.SavePosition(tx.ctx, next); err != nil {
		return err
	}
	tx.undo = append(tx.undo, func(ctx context.Context) error {
		if prev == nil {
			return tx.l.store.DeletePosition(ctx, next.LaunchpadID, next.Account)
		}
		return tx.l.store.SavePosition(ctx, prev)
	})
	return nil
}

func (tx *txn) saveInventory(next, prev *inventory.Inventory) error {
	next.Touch(tx.now)
	if err := tx.l.store.SaveInventory(tx.ctx, next); err != nil {
		return err
	}
	tx.undo = append(tx.undo, func(ctx context.Context) error {
		return tx.l.store.SaveInventory(ctx, prev)
	})
	return nil
}

// record appends a journal entry for the operation.
func (tx *txn) record(kind journal.Kind, account, caller types.Account, token asset.Token, amount, counter types.Amount) (*journal.Entry, error) {
	e := &journal.Entry{
		ID:          id.NewEntryID(),
		LaunchpadID: tx.l.id,
		Kind:        kind,
		Account:     account,
		Caller:      caller,
		Asset:       token.Symbol(),
		Amount:      amount,
		Counter:     counter,
		At:          tx.now,
	}
	if err := tx.l.store.AppendEntry(tx.ctx, e); err != nil {
		return nil, err
	}
	tx.undo = append(tx.undo, func(ctx context.Context) error {
		return tx.l.store.RemoveEntry(ctx, e.ID)
	})
	return e, nil
}

// ──────────────────────────────────────────────────
// Asset movements
// ──────────────────────────────────────────────────

// pull moves amount from the holder into custody using the allowance the
// holder granted to the custody account.
func (tx *txn) pull(token asset.Token, from types.Account, amount types.Amount) error {
	custody := tx.l.cfg.Custody
	if err := token.TransferFrom(tx.ctx, custody, from, custody, amount); err != nil {
		return &TransferError{Op: tx.op, Asset: token.Symbol(), Err: err}
	}
	return nil
}

// push moves amount out of custody to the recipient.
func (tx *txn) push(token asset.Token, to types.Account, amount types.Amount) error {
	if err := token.Transfer(tx.ctx, tx.l.cfg.Custody, to, amount); err != nil {
		return &TransferError{Op: tx.op, Asset: token.Symbol(), Err: err}
	}
	return nil
}
