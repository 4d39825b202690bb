// Package service implements the inventory use cases sitting between the
// transport layer and the store: input validation, ID generation, and
// persistence round-trips.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/invsys/invctl/internal/codec"
	"github.com/invsys/invctl/internal/domain"
	"github.com/invsys/invctl/internal/store"
	"github.com/shopspring/decimal"
)

// InventoryService defines the operations the transport layer drives.
type InventoryService interface {
	// Add validates the input, builds the right product variant and inserts
	// it. A blank ID is replaced with a generated UUID.
	Add(input ProductInput) (ProductView, error)

	// Sell removes qty units from stock and returns the remaining stock.
	Sell(id string, qty int64) (int64, error)

	// Restock adds qty units to stock and returns the new stock level.
	Restock(id string, qty int64) (int64, error)

	// Remove deletes a product by ID.
	Remove(id string) error

	// SearchByName returns products whose name contains substr, ignoring case.
	SearchByName(substr string) []ProductView

	// SearchByType returns all products of the named variant kind.
	SearchByType(kind string) ([]ProductView, error)

	// ListAll returns every product in insertion order.
	ListAll() []ProductView

	// TotalValue returns the summed price×stock over the whole inventory.
	TotalValue() decimal.Decimal

	// RemoveExpired drops groceries expired as of the given date and returns
	// how many were removed.
	RemoveExpired(asOf time.Time) int

	// SaveFile persists the inventory to path.
	SaveFile(path string) error

	// LoadFile replaces the inventory with the contents of path and returns
	// the number of products loaded. The previous inventory is kept when
	// loading fails.
	LoadFile(path string) (int, error)
}

// ProductInput carries caller-supplied fields for a new product. Price is a
// decimal literal; Expiry uses the 2006-01-02 layout. Variant-specific fields
// are required only for their own kind.
type ProductInput struct {
	Kind     string `validate:"required,oneof=Electronics Grocery Clothing"`
	ID       string
	Name     string `validate:"required"`
	Price    string `validate:"required"`
	Stock    int64  `validate:"gte=0"`
	Warranty string `validate:"required_if=Kind Electronics"`
	Brand    string `validate:"required_if=Kind Electronics"`
	Expiry   string `validate:"required_if=Kind Grocery,omitempty,datetime=2006-01-02"`
	Size     string `validate:"required_if=Kind Clothing"`
	Material string `validate:"required_if=Kind Clothing"`
}

// ProductView is the read-only representation handed to the transport layer.
type ProductView struct {
	Kind   string
	ID     string
	Name   string
	Price  string
	Stock  int64
	Detail string
}

// String renders the view the way the menu lists products.
func (v ProductView) String() string {
	s := fmt.Sprintf("%s: ID=%s, Name=%s, Price=%s, Stock=%d", v.Kind, v.ID, v.Name, v.Price, v.Stock)
	if v.Detail != "" {
		s += ", " + v.Detail
	}
	return s
}

// Service implements InventoryService on top of an in-memory store.
type Service struct {
	inv      *store.Inventory
	validate *validator.Validate
	logger   *slog.Logger
}

var _ InventoryService = (*Service)(nil)

// NewService creates a Service around the given inventory.
func NewService(inv *store.Inventory, logger *slog.Logger) *Service {
	return &Service{
		inv:      inv,
		validate: validator.New(),
		logger:   logger.With("component", "service"),
	}
}

// Add validates the input, builds the product variant named by Kind and
// inserts it into the inventory.
func (s *Service) Add(input ProductInput) (ProductView, error) {
	if err := s.validate.Struct(input); err != nil {
		return ProductView{}, fmt.Errorf("invalid product: %w", err)
	}
	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return ProductView{}, fmt.Errorf("invalid price %q: %w", input.Price, err)
	}
	if price.IsNegative() {
		return ProductView{}, fmt.Errorf("price must not be negative, got %s", price)
	}

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}

	var p domain.Product
	switch domain.Kind(input.Kind) {
	case domain.KindElectronics:
		p, err = domain.NewElectronics(id, input.Name, price, input.Stock, input.Warranty, input.Brand)
	case domain.KindGrocery:
		var expiry time.Time
		expiry, err = time.Parse(codec.DateLayout, input.Expiry)
		if err == nil {
			p, err = domain.NewGrocery(id, input.Name, price, input.Stock, expiry)
		}
	default:
		p, err = domain.NewClothing(id, input.Name, price, input.Stock, input.Size, input.Material)
	}
	if err != nil {
		return ProductView{}, err
	}

	if err := s.inv.Add(p); err != nil {
		return ProductView{}, err
	}
	s.logger.Info("product added", "id", p.ID, "kind", p.Kind, "name", p.Name)
	return toView(p), nil
}

// Sell removes qty units of the identified product from stock.
func (s *Service) Sell(id string, qty int64) (int64, error) {
	remaining, err := s.inv.Sell(id, qty)
	if err != nil {
		return remaining, err
	}
	s.logger.Info("product sold", "id", id, "quantity", qty, "remaining", remaining)
	return remaining, nil
}

// Restock adds qty units of the identified product to stock.
func (s *Service) Restock(id string, qty int64) (int64, error) {
	stock, err := s.inv.Restock(id, qty)
	if err != nil {
		return stock, err
	}
	s.logger.Info("product restocked", "id", id, "quantity", qty, "stock", stock)
	return stock, nil
}

// Remove deletes a product by ID.
func (s *Service) Remove(id string) error {
	if err := s.inv.Remove(id); err != nil {
		return err
	}
	s.logger.Info("product removed", "id", id)
	return nil
}

// SearchByName returns products whose name contains substr, ignoring case.
func (s *Service) SearchByName(substr string) []ProductView {
	var out []ProductView
	for p := range s.inv.SearchByName(substr) {
		out = append(out, toView(p))
	}
	return out
}

// SearchByType returns all products of the named variant kind.
func (s *Service) SearchByType(kind string) ([]ProductView, error) {
	k, err := domain.ParseKind(strings.TrimSpace(kind))
	if err != nil {
		return nil, err
	}
	var out []ProductView
	for p := range s.inv.SearchByType(k) {
		out = append(out, toView(p))
	}
	return out, nil
}

// ListAll returns every product in insertion order.
func (s *Service) ListAll() []ProductView {
	products := s.inv.ListAll()
	out := make([]ProductView, len(products))
	for i, p := range products {
		out[i] = toView(p)
	}
	return out
}

// TotalValue returns the summed price×stock over the whole inventory.
func (s *Service) TotalValue() decimal.Decimal {
	return s.inv.TotalValue()
}

// RemoveExpired drops groceries expired as of the given date.
func (s *Service) RemoveExpired(asOf time.Time) int {
	removed := s.inv.RemoveExpired(asOf)
	if removed > 0 {
		s.logger.Info("expired products removed", "count", removed, "as_of", asOf.Format(codec.DateLayout))
	}
	return removed
}

// SaveFile persists the inventory to path.
func (s *Service) SaveFile(path string) error {
	if err := codec.Save(s.inv, path); err != nil {
		return err
	}
	s.logger.Info("inventory saved", "path", path, "products", s.inv.Len())
	return nil
}

// LoadFile replaces the inventory with the contents of path. The previous
// inventory stays in place when loading fails.
func (s *Service) LoadFile(path string) (int, error) {
	loaded, err := codec.Load(path)
	if err != nil {
		return 0, err
	}
	s.inv = loaded
	s.logger.Info("inventory loaded", "path", path, "products", loaded.Len())
	return loaded.Len(), nil
}

// IsNotFound reports whether err denotes a missing product.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

func toView(p domain.Product) ProductView {
	v := ProductView{
		Kind:  string(p.Kind),
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price.StringFixed(2),
		Stock: p.Stock,
	}
	switch p.Kind {
	case domain.KindElectronics:
		v.Detail = fmt.Sprintf("Warranty=%s, Brand=%s", p.Warranty, p.Brand)
	case domain.KindGrocery:
		v.Detail = fmt.Sprintf("Expiry=%s", p.Expiry.Format(codec.DateLayout))
	case domain.KindClothing:
		v.Detail = fmt.Sprintf("Size=%s, Material=%s", p.Size, p.Material)
	}
	return v
}
