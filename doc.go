// Package launchpad provides a staged token-sale-and-vesting ledger for Go
// applications.
//
// Launchpad is designed as a library, not a service. A Launchpad runs one
// sale through a fixed schedule:
//
//   - Staking: participants lock a staking asset within a volume range
//   - Sale: after unstaking, participants buy the sale asset at a fixed
//     price, capped by the tier their locked volume reached
//   - Vesting: purchases unlock with an initial cliff and then linearly
//
// Fungible assets live on external ledgers behind the asset.Token port; the
// launchpad only keeps positions, the sale inventory and a journal.
//
// # Quick Start
//
//	cfg := launchpad.Config{
//	    Owner:   "owner",
//	    Custody: "launchpad",
//	    Assets:  asset.Set{Staking: stk, Sale: sal, Purchase: pur},
//	    StakingWindow: launchpad.Window{Start: t0.Add(time.Minute), End: t0.Add(2 * time.Minute)},
//	    StakingVolume: launchpad.VolumeRange{Min: launchpad.Units(100), Max: launchpad.Units(100000)},
//	    StakingTiers:  []launchpad.Amount{launchpad.Units(1000), launchpad.Units(5000)},
//	    // sale and vesting fields ...
//	}
//
//	lp, err := launchpad.New(cfg, memory.New())
//	if err != nil {
//	    log.Fatal(err) // *launchpad.ConfigError
//	}
//	if err := lp.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer lp.Stop()
//
//	err = lp.Stake(ctx, "alice", launchpad.Units(1000))
//
// # Phases
//
// Every mutating call is gated on the clock. Windows are half-open, so at
// StakingWindow.End staking is closed and unstaking is open. Calls outside
// their window fail with a *PhaseError.
//
// # Atomicity
//
// Mutating calls are serialized per launchpad. Each call stages its changes,
// persists them, then moves assets; if the asset ledger rejects the transfer
// the staged changes are rolled back and the call returns a *TransferError.
// A token that calls back into the launchpad during a transfer gets
// ErrReentrantCall.
//
// # Amounts
//
// All quantities are 18-decimal fixed point (types.Amount) on 256-bit
// integers. Arithmetic is overflow checked and rounds down.
//
// # TypeID
//
// Records use TypeID identifiers: lp_ for launchpads, pos_ for positions and
// jrnl_ for journal entries.
package launchpad
