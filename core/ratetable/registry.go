// Package ratetable - Provider registry with validation
// Tables are validated at registration time; registration fails fast on
// an invalid or duplicate table.
package ratetable

import (
	"fmt"
	"sort"
	"sync"

	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

// Registry holds the rate tables for all known providers. It is written
// once at load time and read-only afterwards, so concurrent lookups need
// no coordination beyond the internal lock.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*RateTable
}

// NewRegistry creates an empty provider registry
func NewRegistry() *Registry {
	return &Registry{
		tables: make(map[string]*RateTable),
	}
}

// Register adds a validated rate table to the registry.
// Panics on a duplicate provider key (fail fast at load time).
func (r *Registry) Register(table *RateTable) error {
	if err := table.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tables[table.Provider]; exists {
		panic(fmt.Sprintf("rate table already registered: %s", table.Provider))
	}
	r.tables[table.Provider] = table
	return nil
}

// Get returns the rate table for a provider key
func (r *Registry) Get(provider string) (*RateTable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table, ok := r.tables[provider]
	if !ok {
		return nil, errors.NotFound("rate table", provider)
	}
	return table, nil
}

// GetByUtility returns all tables for a utility kind, sorted by provider key
func (r *Registry) GetByUtility(utility types.UtilityKind) []*RateTable {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tables []*RateTable
	for _, table := range r.tables {
		if table.Utility == utility {
			tables = append(tables, table)
		}
	}
	sort.Slice(tables, func(i, j int) bool {
		return tables[i].Provider < tables[j].Provider
	})
	return tables
}

// List returns all provider keys in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.tables))
	for k := range r.tables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered tables
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tables)
}
