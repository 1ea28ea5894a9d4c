package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/s0up4200/nestoria/nestoria"
)

// Manager holds named filter presets
type Manager struct {
	compiler Compiler
	filters  map[string]CompiledFilter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: NewExprCompiler(WithCache(100)),
		filters:  make(map[string]CompiledFilter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterFilter registers a new filter or updates an existing one
func (m *Manager) RegisterFilter(name, expression string) error {
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[name] = filter
	m.mu.Unlock()

	return nil
}

// RegisterFilters registers every name -> expression pair
func (m *Manager) RegisterFilters(presets map[string]string) error {
	for _, name := range slices.Sorted(maps.Keys(presets)) {
		if err := m.RegisterFilter(name, presets[name]); err != nil {
			return err
		}
	}
	return nil
}

// GetFilter returns a registered filter
func (m *Manager) GetFilter(name string) (CompiledFilter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filter, ok := m.filters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	return filter, nil
}

// Compile compiles an ad-hoc expression with the manager's compiler
func (m *Manager) Compile(expression string) (CompiledFilter, error) {
	return m.compiler.Compile(expression)
}

// Names returns the registered preset names in sorted order
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Apply returns the listings matching filter, preserving order.
// It stops early if ctx is cancelled.
func Apply(ctx context.Context, filter Filter, listings []nestoria.Listing) ([]nestoria.Listing, error) {
	matches := make([]nestoria.Listing, 0, len(listings))
	for _, listing := range listings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if filter.Evaluate(listing) {
			matches = append(matches, listing)
		}
	}
	return matches, nil
}
