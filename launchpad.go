package launchpad

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/launchpad/clock"
	"github.com/xraph/launchpad/id"
	"github.com/xraph/launchpad/inventory"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/plugin"
	"github.com/xraph/launchpad/position"
	"github.com/xraph/launchpad/store"
	"github.com/xraph/launchpad/types"
)

// Launchpad is the staking, sale and vesting engine for one token sale.
type Launchpad struct {
	id      id.LaunchpadID
	cfg     Config
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger
	clock   clock.Clock
	mode    TierMode
	migrate bool

	// mu serializes every mutating operation. Queries take the shared side
	// so they never observe writes a failed operation is about to undo.
	mu sync.RWMutex
}

// New validates cfg and creates a Launchpad backed by s. It fails with a
// *ConfigError and creates nothing when cfg violates a construction
// invariant.
func New(cfg Config, s store.Store, opts ...Option) (*Launchpad, error) {
	cfg = cfg.clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Launchpad{
		id:      id.NewLaunchpadID(),
		cfg:     cfg,
		store:   s,
		plugins: plugin.NewRegistry(),
		logger:  slog.Default(),
		clock:   clock.System{},
		mode:    TierScaled,
		migrate: true,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Option configures a Launchpad instance.
type Option func(*Launchpad)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launchpad) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Launchpad) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithPluginTimeout bounds how long a single plugin hook may run.
func WithPluginTimeout(d time.Duration) Option {
	return func(l *Launchpad) {
		l.plugins.WithTimeout(d)
	}
}

// WithClock replaces the wall clock, typically with a *clock.Mock.
func WithClock(c clock.Clock) Option {
	return func(l *Launchpad) {
		l.clock = c
	}
}

// WithTierMode selects how sale ratio tiers become purchase caps.
func WithTierMode(mode TierMode) Option {
	return func(l *Launchpad) {
		l.mode = mode
	}
}

// WithID attaches the launchpad to an existing identity, so a persistent
// store resumes the same positions and inventory after a restart.
func WithID(lpID id.LaunchpadID) Option {
	return func(l *Launchpad) {
		l.id = lpID
	}
}

// WithoutMigrate skips the schema migration in Start, for stores whose
// schema is managed elsewhere.
func WithoutMigrate() Option {
	return func(l *Launchpad) {
		l.migrate = false
	}
}

// Start migrates the store, makes sure the inventory record exists and
// initializes plugins.
func (l *Launchpad) Start(ctx context.Context) error {
	if l.migrate {
		if err := l.store.Migrate(ctx); err != nil {
			return err
		}
	}

	l.mu.Lock()
	_, err := l.store.GetInventory(ctx, l.id)
	if errors.Is(err, ErrInventoryNotFound) {
		inv := l.newInventory()
		err = l.store.SaveInventory(ctx, inv)
	}
	l.mu.Unlock()
	if err != nil {
		return err
	}

	l.plugins.EmitInit(ctx, l)

	now := l.clock.Now()
	l.logger.Info("launchpad started",
		"launchpad_id", l.id.String(),
		"name", l.cfg.Name,
		"phase", l.cfg.PhaseAt(now),
		"tier_mode", l.mode,
	)

	return nil
}

// Stop shuts down plugins and closes the store.
func (l *Launchpad) Stop() error {
	ctx := context.Background()
	l.plugins.EmitShutdown(ctx)

	l.logger.Info("launchpad stopped", "launchpad_id", l.id.String())
	return l.store.Close()
}

// ──────────────────────────────────────────────────
// Accessors
// ──────────────────────────────────────────────────

// ID returns the launchpad identity.
func (l *Launchpad) ID() id.LaunchpadID { return l.id }

// Config returns a copy of the launchpad configuration.
func (l *Launchpad) Config() Config { return l.cfg.clone() }

// TierMode returns the active tier mode.
func (l *Launchpad) TierMode() TierMode { return l.mode }

// Plugins returns the plugin registry.
func (l *Launchpad) Plugins() *plugin.Registry { return l.plugins }

// Phase returns the current phase.
func (l *Launchpad) Phase() Phase { return l.cfg.PhaseAt(l.clock.Now()) }

// ──────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────

// Position returns the participant's position or ErrPositionNotFound.
func (l *Launchpad) Position(ctx context.Context, participant types.Account) (*position.Position, error) {
	defer l.read(ctx)()
	return l.store.GetPosition(ctx, l.id, participant)
}

// Positions lists positions of this launchpad.
func (l *Launchpad) Positions(ctx context.Context, opts position.ListOpts) ([]*position.Position, error) {
	defer l.read(ctx)()
	return l.store.ListPositions(ctx, l.id, opts)
}

// Inventory returns the sale inventory. Before the first write it reports an
// empty inventory.
func (l *Launchpad) Inventory(ctx context.Context) (*inventory.Inventory, error) {
	defer l.read(ctx)()
	inv, err := l.store.GetInventory(ctx, l.id)
	if errors.Is(err, ErrInventoryNotFound) {
		return l.newInventory(), nil
	}
	return inv, err
}

// InventoryDeposited returns the total sale asset ever deposited.
func (l *Launchpad) InventoryDeposited(ctx context.Context) (types.Amount, error) {
	inv, err := l.Inventory(ctx)
	if err != nil {
		return types.Zero(), err
	}
	return inv.Deposited, nil
}

// InventorySold returns the total sale asset committed to participants.
func (l *Launchpad) InventorySold(ctx context.Context) (types.Amount, error) {
	inv, err := l.Inventory(ctx)
	if err != nil {
		return types.Zero(), err
	}
	return inv.Sold, nil
}

// MaxPurchase returns the participant's purchase cap. A participant who
// never staked has a cap of zero.
func (l *Launchpad) MaxPurchase(ctx context.Context, participant types.Account) (types.Amount, error) {
	defer l.read(ctx)()
	pos, err := l.store.GetPosition(ctx, l.id, participant)
	if errors.Is(err, ErrPositionNotFound) {
		return types.Zero(), nil
	}
	if err != nil {
		return types.Zero(), err
	}
	return l.cfg.MaxPurchase(pos.LockedVolume, l.mode)
}

// ReleasableNow returns the cumulative vested amount of the participant's
// purchase at the current time, including what was already released.
func (l *Launchpad) ReleasableNow(ctx context.Context, participant types.Account) (types.Amount, error) {
	defer l.read(ctx)()
	pos, err := l.store.GetPosition(ctx, l.id, participant)
	if errors.Is(err, ErrPositionNotFound) {
		return types.Zero(), nil
	}
	if err != nil {
		return types.Zero(), err
	}
	return l.cfg.ReleasableAt(pos.PurchasedAmount, l.clock.Now())
}

// DueNow returns what ReleaseVestedTokens would pay the participant now.
func (l *Launchpad) DueNow(ctx context.Context, participant types.Account) (types.Amount, error) {
	defer l.read(ctx)()
	pos, err := l.store.GetPosition(ctx, l.id, participant)
	if errors.Is(err, ErrPositionNotFound) {
		return types.Zero(), nil
	}
	if err != nil {
		return types.Zero(), err
	}
	vested, err := l.cfg.ReleasableAt(pos.PurchasedAmount, l.clock.Now())
	if err != nil {
		return types.Zero(), err
	}
	return vested.SaturatingSub(pos.ReleasedAmount), nil
}

// Journal lists committed operations, oldest first.
func (l *Launchpad) Journal(ctx context.Context, opts journal.ListOpts) ([]*journal.Entry, error) {
	defer l.read(ctx)()
	return l.store.ListEntries(ctx, l.id, opts)
}

// read takes the shared side of mu and returns its release. A context that
// is already inside a mutating call of l holds the exclusive side, so it
// reads without locking and sees that call's staged writes.
func (l *Launchpad) read(ctx context.Context) (release func()) {
	if ctx.Value(guardKey{l}) != nil {
		return func() {}
	}
	l.mu.RLock()
	return l.mu.RUnlock
}

func (l *Launchpad) newInventory() *inventory.Inventory {
	return &inventory.Inventory{
		Entity:      types.NewEntity(l.clock.Now()),
		LaunchpadID: l.id,
	}
}
