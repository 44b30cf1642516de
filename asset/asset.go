// Package asset defines the launchpad's port to external fungible-asset
// ledgers. The launchpad never holds balances itself: staking, sale and
// purchase assets all move through a Token.
package asset

import (
	"context"
	"errors"

	"github.com/xraph/launchpad/types"
)

// Errors a Token reports when it rejects a movement. Implementations may wrap
// them with detail; callers match with errors.Is.
var (
	ErrInsufficientBalance   = errors.New("asset: insufficient balance")
	ErrInsufficientAllowance = errors.New("asset: insufficient allowance")
	ErrInvalidAccount        = errors.New("asset: invalid account")
)

// Token is one external fungible-asset ledger with ERC-20 style semantics.
// A rejected transfer must leave every balance and allowance untouched.
type Token interface {
	// Symbol names the asset for logs and journal entries.
	Symbol() string

	// BalanceOf returns the balance held by holder.
	BalanceOf(ctx context.Context, holder types.Account) (types.Amount, error)

	// Transfer moves amount out of from, which must be the account the caller
	// controls (the launchpad custody account when pushing payouts).
	Transfer(ctx context.Context, from, to types.Account, amount types.Amount) error

	// TransferFrom moves amount out of owner into to, spending the allowance
	// owner previously granted to spender.
	TransferFrom(ctx context.Context, spender, owner, to types.Account, amount types.Amount) error
}

// Set bundles the three assets a launchpad moves.
type Set struct {
	Staking  Token
	Sale     Token
	Purchase Token
}

// Complete reports whether all three tokens are present.
func (s Set) Complete() bool {
	return s.Staking != nil && s.Sale != nil && s.Purchase != nil
}
