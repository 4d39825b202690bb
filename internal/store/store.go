// Package store implements the in-memory inventory keyed by product ID.
package store

import (
	"fmt"
	"iter"
	"strings"
	"sync"
	"time"

	"github.com/invsys/invctl/internal/domain"
	"github.com/shopspring/decimal"
)

// Inventory owns all products of one catalog. Lookups go through the map;
// the order slice preserves insertion order for listing. Failed operations
// never leave a partial mutation behind.
type Inventory struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Product
	order []string
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{byID: make(map[string]*domain.Product)}
}

// Add inserts a product. Returns ErrDuplicateID if the ID is already taken.
func (inv *Inventory) Add(p domain.Product) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, exists := inv.byID[p.ID]; exists {
		return fmt.Errorf("add product %q: %w", p.ID, domain.ErrDuplicateID)
	}
	inv.byID[p.ID] = &p
	inv.order = append(inv.order, p.ID)
	return nil
}

// Get returns a copy of the product with the given ID.
func (inv *Inventory) Get(id string) (domain.Product, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	p, ok := inv.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %q: %w", id, domain.ErrNotFound)
	}
	return *p, nil
}

// Remove deletes the product with the given ID.
func (inv *Inventory) Remove(id string) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, ok := inv.byID[id]; !ok {
		return fmt.Errorf("remove product %q: %w", id, domain.ErrNotFound)
	}
	inv.deleteLocked(id)
	return nil
}

// Sell decrements the stock of the identified product by qty and returns the
// remaining stock. The product is unchanged when the sale fails.
func (inv *Inventory) Sell(id string, qty int64) (int64, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	p, ok := inv.byID[id]
	if !ok {
		return 0, fmt.Errorf("sell product %q: %w", id, domain.ErrNotFound)
	}
	if err := p.Sell(qty); err != nil {
		return p.Stock, err
	}
	return p.Stock, nil
}

// Restock increments the stock of the identified product by qty and returns
// the new stock level.
func (inv *Inventory) Restock(id string, qty int64) (int64, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	p, ok := inv.byID[id]
	if !ok {
		return 0, fmt.Errorf("restock product %q: %w", id, domain.ErrNotFound)
	}
	if err := p.Restock(qty); err != nil {
		return p.Stock, err
	}
	return p.Stock, nil
}

// SearchByName yields products whose name contains substr, case-insensitively,
// in insertion order. The sequence is recomputed on every traversal, so it
// always reflects the current inventory.
func (inv *Inventory) SearchByName(substr string) iter.Seq[domain.Product] {
	needle := strings.ToLower(substr)
	return inv.match(func(p *domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	})
}

// SearchByType yields all products of the given variant kind in insertion order.
func (inv *Inventory) SearchByType(kind domain.Kind) iter.Seq[domain.Product] {
	return inv.match(func(p *domain.Product) bool {
		return p.Kind == kind
	})
}

func (inv *Inventory) match(keep func(*domain.Product) bool) iter.Seq[domain.Product] {
	return func(yield func(domain.Product) bool) {
		inv.mu.RLock()
		defer inv.mu.RUnlock()
		for _, id := range inv.order {
			p := inv.byID[id]
			if !keep(p) {
				continue
			}
			if !yield(*p) {
				return
			}
		}
	}
}

// ListAll returns copies of all products in insertion order.
func (inv *Inventory) ListAll() []domain.Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make([]domain.Product, 0, len(inv.order))
	for _, id := range inv.order {
		out = append(out, *inv.byID[id])
	}
	return out
}

// TotalValue returns the sum of price multiplied by stock over all products.
// An empty inventory is worth zero.
func (inv *Inventory) TotalValue() decimal.Decimal {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	total := decimal.Zero
	for _, p := range inv.byID {
		total = total.Add(p.Value())
	}
	return total
}

// RemoveExpired deletes every grocery product expired as of the given date
// and returns how many were removed. Other variants are never touched.
func (inv *Inventory) RemoveExpired(asOf time.Time) int {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	var expired []string
	for _, id := range inv.order {
		if inv.byID[id].ExpiredBy(asOf) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		inv.deleteLocked(id)
	}
	return len(expired)
}

// Len returns the number of products held.
func (inv *Inventory) Len() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return len(inv.byID)
}

func (inv *Inventory) deleteLocked(id string) {
	delete(inv.byID, id)
	for i, oid := range inv.order {
		if oid == id {
			inv.order = append(inv.order[:i], inv.order[i+1:]...)
			break
		}
	}
}
