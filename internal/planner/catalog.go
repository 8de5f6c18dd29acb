package planner

import (
	"fmt"
	"sort"
	"sync"
)

// Catalog maps table names to their adapters. Resolution happens once per
// table reference during planning; the same catalog serves concurrent
// planning passes, so lookups take a read lock.
type Catalog struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

func NewCatalog() *Catalog {
	return &Catalog{
		tables: make(map[string]*Table),
	}
}

// Register adds a table under the given name.
// Registering the same name twice is an error.
func (c *Catalog) Register(name string, table *Table) error {
	if name == "" {
		return fmt.Errorf("table name must not be empty")
	}
	if table == nil {
		return fmt.Errorf("table %s: adapter must not be nil", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.tables[name]; exists {
		return fmt.Errorf("table already registered: %s", name)
	}
	c.tables[name] = table
	return nil
}

// Resolve returns the adapter registered under name
func (c *Catalog) Resolve(name string) (*Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	table, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("table not found: %s", name)
	}
	return table, nil
}

// Names returns all registered table names, sorted
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered tables
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}
