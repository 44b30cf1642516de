package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xraph/launchpad"
	"github.com/xraph/launchpad/id"
	"github.com/xraph/launchpad/inventory"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/position"
	"github.com/xraph/launchpad/types"
)

var t0 = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func newPosition(lpID id.LaunchpadID, account types.Account, created time.Time) *position.Position {
	return &position.Position{
		Entity:       types.NewEntity(created),
		ID:           id.NewPositionID(),
		LaunchpadID:  lpID,
		Account:      account,
		LockedVolume: types.Units(100),
		StakedAt:     created,
	}
}

func TestPositionsAreCopied(t *testing.T) {
	ctx := context.Background()
	s := New()
	lpID := id.NewLaunchpadID()

	p := newPosition(lpID, "alice", t0)
	if err := s.SavePosition(ctx, p); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's copy must not reach the store.
	p.LockedVolume = types.Units(999)

	got, err := s.GetPosition(ctx, lpID, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if !got.LockedVolume.Equal(types.Units(100)) {
		t.Errorf("LockedVolume: got %s, want 100", got.LockedVolume)
	}

	got.Unlocked = true
	again, _ := s.GetPosition(ctx, lpID, "alice")
	if again.Unlocked {
		t.Error("returned position shares state with the store")
	}
}

func TestPositionNotFound(t *testing.T) {
	ctx := context.Background()
	s := New()
	lpID := id.NewLaunchpadID()

	if err := s.SavePosition(ctx, newPosition(lpID, "alice", t0)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		lpID    id.LaunchpadID
		account types.Account
	}{
		{"unknown account", lpID, "bob"},
		{"other launchpad", id.NewLaunchpadID(), "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.GetPosition(ctx, tt.lpID, tt.account)
			if !errors.Is(err, launchpad.ErrPositionNotFound) {
				t.Errorf("got %v, want ErrPositionNotFound", err)
			}
		})
	}

	if err := s.DeletePosition(ctx, lpID, "alice"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetPosition(ctx, lpID, "alice"); !errors.Is(err, launchpad.ErrPositionNotFound) {
		t.Errorf("after delete: got %v, want ErrPositionNotFound", err)
	}
}

func TestListPositions(t *testing.T) {
	ctx := context.Background()
	s := New()
	lpID := id.NewLaunchpadID()

	for i, a := range []types.Account{"carol", "alice", "bob"} {
		p := newPosition(lpID, a, t0.Add(time.Duration(i)*time.Second))
		if a == "bob" {
			p.Unlocked = true
		}
		if err := s.SavePosition(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.SavePosition(ctx, newPosition(id.NewLaunchpadID(), "dave", t0)); err != nil {
		t.Fatal(err)
	}

	unlocked := true
	tests := []struct {
		name string
		opts position.ListOpts
		want []types.Account
	}{
		{"all by creation", position.ListOpts{}, []types.Account{"carol", "alice", "bob"}},
		{"unlocked only", position.ListOpts{Unlocked: &unlocked}, []types.Account{"bob"}},
		{"limit", position.ListOpts{Limit: 2}, []types.Account{"carol", "alice"}},
		{"offset", position.ListOpts{Offset: 1}, []types.Account{"alice", "bob"}},
		{"offset past end", position.ListOpts{Offset: 10}, nil},
		{"negative offset", position.ListOpts{Offset: -3}, []types.Account{"carol", "alice", "bob"}},
		{"negative limit", position.ListOpts{Limit: -1, Offset: 2}, []types.Account{"bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListPositions(ctx, lpID, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d positions, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Account != tt.want[i] {
					t.Errorf("position %d: got %s, want %s", i, got[i].Account, tt.want[i])
				}
			}
		})
	}
}

func TestInventory(t *testing.T) {
	ctx := context.Background()
	s := New()
	lpID := id.NewLaunchpadID()

	if _, err := s.GetInventory(ctx, lpID); !errors.Is(err, launchpad.ErrInventoryNotFound) {
		t.Fatalf("got %v, want ErrInventoryNotFound", err)
	}

	inv := &inventory.Inventory{
		Entity:      types.NewEntity(t0),
		LaunchpadID: lpID,
		Deposited:   types.Units(1000),
		Sold:        types.Units(300),
		Reclaimed:   types.Units(200),
	}
	if err := s.SaveInventory(ctx, inv); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetInventory(ctx, lpID)
	if err != nil {
		t.Fatal(err)
	}
	if want := types.Units(500); !got.Available().Equal(want) {
		t.Errorf("Available: got %s, want %s", got.Available(), want)
	}
}

func TestJournal(t *testing.T) {
	ctx := context.Background()
	s := New()
	lpID := id.NewLaunchpadID()

	entries := []*journal.Entry{
		{ID: id.NewEntryID(), LaunchpadID: lpID, Kind: journal.KindStake, Account: "alice", Amount: types.Units(1), At: t0},
		{ID: id.NewEntryID(), LaunchpadID: lpID, Kind: journal.KindStake, Account: "bob", Amount: types.Units(2), At: t0},
		{ID: id.NewEntryID(), LaunchpadID: lpID, Kind: journal.KindUnstake, Account: "alice", Amount: types.Units(1), At: t0},
		{ID: id.NewEntryID(), LaunchpadID: id.NewLaunchpadID(), Kind: journal.KindStake, Account: "alice", At: t0},
	}
	for _, e := range entries {
		if err := s.AppendEntry(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		opts journal.ListOpts
		want int
	}{
		{"all", journal.ListOpts{}, 3},
		{"by account", journal.ListOpts{Account: "alice"}, 2},
		{"by kind", journal.ListOpts{Kind: journal.KindStake}, 2},
		{"by account and kind", journal.ListOpts{Account: "alice", Kind: journal.KindUnstake}, 1},
		{"limit", journal.ListOpts{Limit: 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListEntries(ctx, lpID, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d entries, want %d", len(got), tt.want)
			}
		})
	}

	if err := s.RemoveEntry(ctx, entries[1].ID); err != nil {
		t.Fatal(err)
	}
	got, _ := s.ListEntries(ctx, lpID, journal.ListOpts{})
	if len(got) != 2 || got[0].Account != "alice" || got[1].Kind != journal.KindUnstake {
		t.Errorf("after remove: unexpected entries %+v", got)
	}
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.Ping(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	if err := s.Ping(ctx); !errors.Is(err, launchpad.ErrStoreClosed) {
		t.Errorf("Ping: got %v, want ErrStoreClosed", err)
	}
	if err := s.SavePosition(ctx, newPosition(id.NewLaunchpadID(), "alice", t0)); !errors.Is(err, launchpad.ErrStoreClosed) {
		t.Errorf("SavePosition: got %v, want ErrStoreClosed", err)
	}
}
