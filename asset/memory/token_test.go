package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/launchpad/asset"
	"github.com/xraph/launchpad/types"
)

const (
	alice   types.Account = "alice"
	bob     types.Account = "bob"
	spender types.Account = "launchpad"
)

func balance(t *testing.T, tok *Token, holder types.Account) types.Amount {
	t.Helper()
	b, err := tok.BalanceOf(context.Background(), holder)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	tok := New("STK")
	if err := tok.Mint(alice, types.Units(100)); err != nil {
		t.Fatal(err)
	}

	if err := tok.Transfer(ctx, alice, bob, types.Units(40)); err != nil {
		t.Fatal(err)
	}
	if got := balance(t, tok, alice); !got.Equal(types.Units(60)) {
		t.Errorf("alice: got %v, want 60", got)
	}
	if got := balance(t, tok, bob); !got.Equal(types.Units(40)) {
		t.Errorf("bob: got %v, want 40", got)
	}

	err := tok.Transfer(ctx, alice, bob, types.Units(61))
	if !errors.Is(err, asset.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if got := balance(t, tok, alice); !got.Equal(types.Units(60)) {
		t.Errorf("failed transfer changed alice: %v", got)
	}
}

func TestTransferFromAllowance(t *testing.T) {
	ctx := context.Background()
	tok := New("PUR")
	if err := tok.Mint(alice, types.Units(100)); err != nil {
		t.Fatal(err)
	}

	err := tok.TransferFrom(ctx, spender, alice, spender, types.Units(10))
	if !errors.Is(err, asset.ErrInsufficientAllowance) {
		t.Fatalf("expected ErrInsufficientAllowance, got %v", err)
	}

	tok.Approve(alice, spender, types.Units(30))
	if err := tok.TransferFrom(ctx, spender, alice, spender, types.Units(10)); err != nil {
		t.Fatal(err)
	}
	if got := tok.Allowance(alice, spender); !got.Equal(types.Units(20)) {
		t.Errorf("allowance: got %v, want 20", got)
	}

	tok.Approve(alice, spender, types.MaxAmount())
	if err := tok.TransferFrom(ctx, spender, alice, spender, types.Units(50)); err != nil {
		t.Fatal(err)
	}
	if got := tok.Allowance(alice, spender); !got.Equal(types.MaxAmount()) {
		t.Errorf("unlimited allowance was decremented: %v", got)
	}

	err = tok.TransferFrom(ctx, spender, alice, spender, types.Units(41))
	if !errors.Is(err, asset.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if got := balance(t, tok, alice); !got.Equal(types.Units(40)) {
		t.Errorf("alice: got %v, want 40", got)
	}
}

func TestTransferHook(t *testing.T) {
	ctx := context.Background()
	var seen []types.Amount
	tok := New("SAL").WithTransferHook(func(_ context.Context, _, _ types.Account, amount types.Amount) {
		seen = append(seen, amount)
	})
	if err := tok.Mint(alice, types.Units(5)); err != nil {
		t.Fatal(err)
	}

	_ = tok.Transfer(ctx, alice, bob, types.Units(2))
	_ = tok.Transfer(ctx, alice, bob, types.Units(9)) // rejected, no hook

	if len(seen) != 1 || !seen[0].Equal(types.Units(2)) {
		t.Errorf("unexpected hook calls: %v", seen)
	}
}

func TestInvalidAccount(t *testing.T) {
	tok := New("STK")
	err := tok.Transfer(context.Background(), "", bob, types.Zero())
	if !errors.Is(err, asset.ErrInvalidAccount) {
		t.Fatalf("expected ErrInvalidAccount, got %v", err)
	}
}
