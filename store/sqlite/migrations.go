package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Launchpad store (SQLite).
var Migrations = migrate.NewGroup("launchpad")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_launchpad_positions",
			Version: "20260101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS launchpad_positions (
    id               TEXT PRIMARY KEY,
    launchpad_id     TEXT NOT NULL,
    account          TEXT NOT NULL,
    locked_volume    TEXT NOT NULL DEFAULT '0',
    purchased_amount TEXT NOT NULL DEFAULT '0',
    released_amount  TEXT NOT NULL DEFAULT '0',
    unlocked         INTEGER NOT NULL DEFAULT 0,
    staked_at        TEXT NOT NULL DEFAULT (datetime('now')),
    unlocked_at      TEXT,
    created_at       TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at       TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_launchpad_positions_account ON launchpad_positions (launchpad_id, account);
CREATE INDEX IF NOT EXISTS idx_launchpad_positions_unlocked ON launchpad_positions (launchpad_id, unlocked);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS launchpad_positions`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_launchpad_inventories",
			Version: "20260101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS launchpad_inventories (
    launchpad_id       TEXT PRIMARY KEY,
    deposited          TEXT NOT NULL DEFAULT '0',
    sold               TEXT NOT NULL DEFAULT '0',
    reclaimed          TEXT NOT NULL DEFAULT '0',
    proceeds           TEXT NOT NULL DEFAULT '0',
    proceeds_withdrawn TEXT NOT NULL DEFAULT '0',
    created_at         TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at         TEXT NOT NULL DEFAULT (datetime('now'))
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS launchpad_inventories`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_launchpad_journal",
			Version: "20260101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS launchpad_journal (
    id           TEXT PRIMARY KEY,
    launchpad_id TEXT NOT NULL,
    kind         TEXT NOT NULL,
    account      TEXT NOT NULL DEFAULT '',
    caller       TEXT NOT NULL DEFAULT '',
    asset        TEXT NOT NULL DEFAULT '',
    amount       TEXT NOT NULL DEFAULT '0',
    counter      TEXT NOT NULL DEFAULT '0',
    at           TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_launchpad_journal_account ON launchpad_journal (launchpad_id, account);
CREATE INDEX IF NOT EXISTS idx_launchpad_journal_kind ON launchpad_journal (launchpad_id, kind);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS launchpad_journal`)
				return err
			},
		},
	)
}
