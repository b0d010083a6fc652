package tracking

import (
	"slices"
	"strings"

	"github.com/sakewinkel/console/internal/entity"
)

// Catalog is the order status reference set. Status ids are opaque keys: the
// terminal status is resolved by name, never by id value.
type Catalog struct {
	names    map[int64]string
	ordered  []string
	terminal map[int64]struct{}
}

// NewCatalog indexes statuses and resolves the terminal status by its
// symbolic key, compared case-insensitively against status names.
func NewCatalog(statuses []entity.OrderStatus, terminalKey string) *Catalog {
	sorted := slices.Clone(statuses)
	slices.SortFunc(sorted, func(a, b entity.OrderStatus) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	key := strings.TrimSpace(terminalKey)
	c := &Catalog{
		names:    make(map[int64]string, len(sorted)),
		terminal: make(map[int64]struct{}),
	}
	for _, s := range sorted {
		name := text(s.Name)
		if name == "" {
			continue
		}
		c.names[s.ID] = name
		c.ordered = append(c.ordered, name)
		if key != "" && strings.EqualFold(name, key) {
			c.terminal[s.ID] = struct{}{}
		}
	}
	return c
}

// Names returns the status names in catalog order, without blanks.
func (c *Catalog) Names() []string {
	return append([]string{}, c.ordered...)
}

// Name resolves a status reference to its name.
func (c *Catalog) Name(id *int64) (string, bool) {
	if id == nil {
		return "", false
	}
	name, ok := c.names[*id]
	return name, ok
}

// HasTerminal reports whether the terminal key matched any catalog entry.
func (c *Catalog) HasTerminal() bool {
	return len(c.terminal) > 0
}

// IsTerminal reports whether the status reference is the terminal status.
func (c *Catalog) IsTerminal(id *int64) bool {
	if id == nil {
		return false
	}
	_, ok := c.terminal[*id]
	return ok
}
