// Package memory provides an in-process Token with ERC-20 semantics. It backs
// tests and local simulations; production wiring supplies a Token that talks
// to the real asset ledger.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/xraph/launchpad/asset"
	"github.com/xraph/launchpad/types"
)

var _ asset.Token = (*Token)(nil)

// TransferHook observes a completed movement. It runs after balances change
// and outside the token lock, so it may call back into whoever initiated the
// transfer. Tests use it to model tokens with untrusted receive hooks.
type TransferHook func(ctx context.Context, from, to types.Account, amount types.Amount)

type allowanceKey struct {
	owner   types.Account
	spender types.Account
}

// Token is a mutex-guarded balance and allowance table.
type Token struct {
	mu sync.Mutex

	symbol     string
	supply     types.Amount
	balances   map[types.Account]types.Amount
	allowances map[allowanceKey]types.Amount
	hook       TransferHook
}

// New creates an empty token.
func New(symbol string) *Token {
	return &Token{
		symbol:     symbol,
		balances:   make(map[types.Account]types.Amount),
		allowances: make(map[allowanceKey]types.Amount),
	}
}

// WithTransferHook installs a hook invoked after every successful movement.
func (t *Token) WithTransferHook(h TransferHook) *Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hook = h
	return t
}

// Symbol implements asset.Token.
func (t *Token) Symbol() string { return t.symbol }

// Mint credits amount to holder and grows the supply.
func (t *Token) Mint(holder types.Account, amount types.Amount) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	supply, err := t.supply.Add(amount)
	if err != nil {
		return fmt.Errorf("asset/memory: mint %s: %w", t.symbol, err)
	}
	bal, err := t.balances[holder].Add(amount)
	if err != nil {
		return fmt.Errorf("asset/memory: mint %s: %w", t.symbol, err)
	}
	t.supply = supply
	t.balances[holder] = bal
	return nil
}

// Approve sets the allowance spender may draw from owner.
func (t *Token) Approve(owner, spender types.Account, amount types.Amount) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.allowances[allowanceKey{owner: owner, spender: spender}] = amount
}

// Allowance returns what spender may still draw from owner.
func (t *Token) Allowance(owner, spender types.Account) types.Amount {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allowances[allowanceKey{owner: owner, spender: spender}]
}

// TotalSupply returns the minted supply.
func (t *Token) TotalSupply() types.Amount {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.supply
}

// BalanceOf implements asset.Token.
func (t *Token) BalanceOf(_ context.Context, holder types.Account) (types.Amount, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[holder], nil
}

// Transfer implements asset.Token.
func (t *Token) Transfer(ctx context.Context, from, to types.Account, amount types.Amount) error {
	t.mu.Lock()
	err := t.move(from, to, amount)
	hook := t.hook
	t.mu.Unlock()

	if err != nil {
		return err
	}
	if hook != nil {
		hook(ctx, from, to, amount)
	}
	return nil
}

// TransferFrom implements asset.Token.
func (t *Token) TransferFrom(ctx context.Context, spender, owner, to types.Account, amount types.Amount) error {
	t.mu.Lock()
	key := allowanceKey{owner: owner, spender: spender}
	allowance := t.allowances[key]
	if allowance.LessThan(amount) {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s allowance %s of %s to %s, need %s",
			asset.ErrInsufficientAllowance, t.symbol, allowance, owner, spender, amount)
	}
	if err := t.move(owner, to, amount); err != nil {
		t.mu.Unlock()
		return err
	}
	// An all-ones allowance is treated as unlimited and never decremented.
	if !allowance.Equal(types.MaxAmount()) {
		t.allowances[key] = allowance.SaturatingSub(amount)
	}
	hook := t.hook
	t.mu.Unlock()

	if hook != nil {
		hook(ctx, owner, to, amount)
	}
	return nil
}

// move must be called with t.mu held. It changes nothing on failure.
func (t *Token) move(from, to types.Account, amount types.Amount) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: %s transfer %q -> %q", asset.ErrInvalidAccount, t.symbol, from, to)
	}

	fromBal := t.balances[from]
	debited, err := fromBal.Sub(amount)
	if err != nil {
		return fmt.Errorf("%w: %s balance of %s is %s, need %s",
			asset.ErrInsufficientBalance, t.symbol, from, fromBal, amount)
	}
	if from == to {
		return nil
	}
	credited, err := t.balances[to].Add(amount)
	if err != nil {
		return fmt.Errorf("asset/memory: credit %s: %w", t.symbol, err)
	}

	t.balances[from] = debited
	t.balances[to] = credited
	return nil
}
