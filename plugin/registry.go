package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/xraph/launchpad/inventory"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/position"
	"github.com/xraph/launchpad/types"
)

// DefaultTimeout bounds a single hook invocation.
const DefaultTimeout = 5 * time.Second

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger
	timeout time.Duration

	// Type-cached plugin lists for efficient dispatch
	onInit               []OnInit
	onShutdown           []OnShutdown
	onStaked             []OnStaked
	onUnstaked           []OnUnstaked
	onInventoryDeposited []OnInventoryDeposited
	onPurchased          []OnPurchased
	onSettled            []OnSettled
	onReleased           []OnReleased
	onRejected           []OnRejected
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:  slog.Default(),
		timeout: DefaultTimeout,
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// WithTimeout overrides the per-hook timeout.
func (r *Registry) WithTimeout(d time.Duration) *Registry {
	r.timeout = d
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnStaked); ok {
		r.onStaked = append(r.onStaked, v)
	}
	if v, ok := p.(OnUnstaked); ok {
		r.onUnstaked = append(r.onUnstaked, v)
	}
	if v, ok := p.(OnInventoryDeposited); ok {
		r.onInventoryDeposited = append(r.onInventoryDeposited, v)
	}
	if v, ok := p.(OnPurchased); ok {
		r.onPurchased = append(r.onPurchased, v)
	}
	if v, ok := p.(OnSettled); ok {
		r.onSettled = append(r.onSettled, v)
	}
	if v, ok := p.(OnReleased); ok {
		r.onReleased = append(r.onReleased, v)
	}
	if v, ok := p.(OnRejected); ok {
		r.onRejected = append(r.onRejected, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnStaked)(nil)).Elem(), "OnStaked")
	checkInterface(reflect.TypeOf((*OnUnstaked)(nil)).Elem(), "OnUnstaked")
	checkInterface(reflect.TypeOf((*OnInventoryDeposited)(nil)).Elem(), "OnInventoryDeposited")
	checkInterface(reflect.TypeOf((*OnPurchased)(nil)).Elem(), "OnPurchased")
	checkInterface(reflect.TypeOf((*OnSettled)(nil)).Elem(), "OnSettled")
	checkInterface(reflect.TypeOf((*OnReleased)(nil)).Elem(), "OnReleased")
	checkInterface(reflect.TypeOf((*OnRejected)(nil)).Elem(), "OnRejected")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, l interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, "OnInit", p.Name(), func() error {
			return p.OnInit(ctx, l)
		})
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, "OnShutdown", p.Name(), func() error {
			return p.OnShutdown(ctx)
		})
	}
}

// EmitStaked emits a stake event.
func (r *Registry) EmitStaked(ctx context.Context, e *journal.Entry, pos *position.Position) {
	r.mu.RLock()
	plugins := r.onStaked
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, "OnStaked", p.Name(), func() error {
			return p.OnStaked(ctx, e, pos)
		})
	}
}

// EmitUnstaked emits an unstake event.
func (r *Registry) EmitUnstaked(ctx context.Context, e *journal.Entry, pos *position.Position) {
	r.mu.RLock()
	plugins := r.onUnstaked
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, "OnUnstaked", p.Name(), func() error {
			return p.OnUnstaked(ctx, e, pos)
		})
	}
}

// EmitInventoryDeposited emits an inventory deposit event.
func (r *Registry) EmitInventoryDeposited(ctx context.Context, e *journal.Entry, inv *inventory.Inventory) {
	r.mu.RLock()
	plugins := r.onInventoryDeposited
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, "OnInventoryDeposited", p.Name(), func() error {
			return p.OnInventoryDeposited(ctx, e, inv)
		})
	}
}

// EmitPurchased emits a purchase event.
func (r *Registry) EmitPurchased(ctx context.Context, e *journal.Entry, pos *position.Position) {
	r.mu.RLock()
	plugins := r.onPurchased
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, "OnPurchased", p.Name(), func() error {
			return p.OnPurchased(ctx, e, pos)
		})
	}
}

// EmitSettled emits an owner settlement event.
func (r *Registry) EmitSettled(ctx context.Context, e *journal.Entry, inv *inventory.Inventory) {
	r.mu.RLock()
	plugins := r.onSettled
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, "OnSettled", p.Name(), func() error {
			return p.OnSettled(ctx, e, inv)
		})
	}
}

// EmitReleased emits a vesting release event.
func (r *Registry) EmitReleased(ctx context.Context, e *journal.Entry, pos *position.Position) {
	r.mu.RLock()
	plugins := r.onReleased
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, "OnReleased", p.Name(), func() error {
			return p.OnReleased(ctx, e, pos)
		})
	}
}

// EmitRejected emits a failed-operation event.
func (r *Registry) EmitRejected(ctx context.Context, op string, account types.Account, cause error) {
	r.mu.RLock()
	plugins := r.onRejected
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, "OnRejected", p.Name(), func() error {
			return p.OnRejected(ctx, op, account, cause)
		})
	}
}

func (r *Registry) dispatch(ctx context.Context, hook, pluginName string, fn func() error) {
	if err := r.callWithTimeout(ctx, pluginName, fn); err != nil {
		r.logger.Warn("plugin "+hook+" failed",
			"plugin", pluginName,
			"error", err,
		)
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the ledger.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(r.timeout):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
