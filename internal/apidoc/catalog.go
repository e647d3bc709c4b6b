// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package apidoc

import (
	"fmt"
	"sync"
)

// Catalog manages named endpoint sets and resolves references across them.
type Catalog struct {
	mu    sync.RWMutex
	sets  map[string]*Set
	order []string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		sets: make(map[string]*Set),
	}
}

// NewSet creates a set and registers it in the catalog.
func (c *Catalog) NewSet(name string) (*Set, error) {
	set := NewSet(name)
	if err := c.Register(set); err != nil {
		return nil, err
	}
	return set, nil
}

// Register adds a set to the catalog.
// It returns an error if a set with the same name is already registered.
func (c *Catalog) Register(set *Set) error {
	if set == nil {
		return fmt.Errorf("cannot register nil set")
	}
	if set.name == "" {
		return fmt.Errorf("set name cannot be empty")
	}
	if set.catalog != nil && set.catalog != c {
		return fmt.Errorf("set %q belongs to another catalog", set.name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.sets[set.name]; exists {
		return fmt.Errorf("set %q is already registered", set.name)
	}

	set.catalog = c
	c.sets[set.name] = set
	c.order = append(c.order, set.name)
	return nil
}

// MustRegister adds a set to the catalog, panicking on error.
func (c *Catalog) MustRegister(set *Set) {
	if err := c.Register(set); err != nil {
		panic(fmt.Sprintf("failed to register set: %v", err))
	}
}

// Get returns a set by name, or nil if not found.
func (c *Catalog) Get(name string) *Set {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.sets[name]
}

// Has checks if a set is registered.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.sets[name]
	return exists
}

// List returns the registered set names in registration order.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Sets returns the registered sets in registration order.
func (c *Catalog) Sets() []*Set {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sets := make([]*Set, 0, len(c.order))
	for _, name := range c.order {
		sets = append(sets, c.sets[name])
	}
	return sets
}

// Count returns the number of registered sets.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.sets)
}

// Resolve returns the endpoint a reference points at.
func (c *Catalog) Resolve(ref Ref) (*Endpoint, bool) {
	set := c.Get(ref.Set)
	if set == nil {
		return nil, false
	}
	return set.Lookup(ref.Name)
}
