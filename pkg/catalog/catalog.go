package catalog

import (
	"fmt"
	"sync"
)

// Permission is a single entry in the catalog: a stable string identifier
// grouped under a category, with a human-readable description.
type Permission struct {
	ID          string `json:"id" yaml:"id"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
}

// Catalog is an append-only registry of permissions. The zero value is not
// usable; create instances with New.
type Catalog struct {
	mu      sync.RWMutex
	index   map[string]int
	ordered []Permission
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		index: make(map[string]int),
	}
}

// Register adds a permission to the catalog. Registration order is preserved
// and determines the order of List and ListByCategory results.
func (c *Catalog) Register(id, category, description string) error {
	if id == "" || category == "" {
		return fmt.Errorf("%w: id and category are required", ErrInvalidPermission)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.index[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePermission, id)
	}

	c.index[id] = len(c.ordered)
	c.ordered = append(c.ordered, Permission{
		ID:          id,
		Category:    category,
		Description: description,
	})

	return nil
}

// Lookup returns the permission registered under the given identifier.
func (c *Catalog) Lookup(id string) (Permission, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, exists := c.index[id]
	if !exists {
		return Permission{}, fmt.Errorf("%w: %s", ErrPermissionNotFound, id)
	}
	return c.ordered[i], nil
}

// Has reports whether the identifier is registered. Authorization code uses
// this as the validity check: an identifier absent from the catalog is
// always denied, never treated as a wildcard.
func (c *Catalog) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.index[id]
	return exists
}

// List returns every registered permission in registration order.
// The returned slice is a copy and safe to retain.
func (c *Catalog) List() []Permission {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Permission, len(c.ordered))
	copy(result, c.ordered)
	return result
}

// ListByCategory returns the permissions registered under the given category,
// in registration order.
func (c *Catalog) ListByCategory(category string) []Permission {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []Permission
	for _, p := range c.ordered {
		if p.Category == category {
			result = append(result, p)
		}
	}
	return result
}

// Categories returns the distinct category labels in first-use order.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{})
	var result []string
	for _, p := range c.ordered {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		result = append(result, p.Category)
	}
	return result
}

// Len returns the number of registered permissions.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.ordered)
}
