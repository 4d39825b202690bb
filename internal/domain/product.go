// Package domain defines the product catalog entries handled by the
// inventory: a tagged-variant Product whose Kind discriminant selects which
// of the variant-specific fields are meaningful. The same discriminant tags
// records in the persisted JSON format.
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no product exists with the requested ID.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicateID is returned when adding a product whose ID is taken.
	ErrDuplicateID = errors.New("product ID already exists")
	// ErrInsufficientStock is returned by Sell when the requested quantity
	// exceeds the units in stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidQuantity is returned for negative sell/restock amounts.
	ErrInvalidQuantity = errors.New("quantity cannot be negative")
)

// Kind identifies a product variant.
type Kind string

const (
	KindElectronics Kind = "Electronics"
	KindGrocery     Kind = "Grocery"
	KindClothing    Kind = "Clothing"
)

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindElectronics, KindGrocery, KindClothing:
		return k, nil
	default:
		return "", fmt.Errorf("unknown product kind %q", s)
	}
}

// Product is one catalog entry. ID, Name, Price and Stock are shared by
// every variant; the remaining fields are meaningful only for the variant
// named by Kind.
type Product struct {
	Kind  Kind
	ID    string
	Name  string
	Price decimal.Decimal
	Stock int64

	// Electronics
	Warranty string
	Brand    string

	// Grocery
	Expiry time.Time

	// Clothing
	Size     string
	Material string
}

// NewElectronics builds an Electronics product.
func NewElectronics(id, name string, price decimal.Decimal, stock int64, warranty, brand string) (Product, error) {
	base, err := newBase(KindElectronics, id, name, price, stock)
	if err != nil {
		return Product{}, err
	}
	base.Warranty = warranty
	base.Brand = brand
	return base, nil
}

// NewGrocery builds a Grocery product. The expiry is truncated to calendar
// date precision in UTC.
func NewGrocery(id, name string, price decimal.Decimal, stock int64, expiry time.Time) (Product, error) {
	base, err := newBase(KindGrocery, id, name, price, stock)
	if err != nil {
		return Product{}, err
	}
	base.Expiry = DateOf(expiry)
	return base, nil
}

// NewClothing builds a Clothing product.
func NewClothing(id, name string, price decimal.Decimal, stock int64, size, material string) (Product, error) {
	base, err := newBase(KindClothing, id, name, price, stock)
	if err != nil {
		return Product{}, err
	}
	base.Size = size
	base.Material = material
	return base, nil
}

func newBase(kind Kind, id, name string, price decimal.Decimal, stock int64) (Product, error) {
	switch {
	case id == "":
		return Product{}, errors.New("product ID must not be empty")
	case name == "":
		return Product{}, errors.New("product name must not be empty")
	case price.IsNegative():
		return Product{}, fmt.Errorf("price must not be negative, got %s", price)
	case stock < 0:
		return Product{}, fmt.Errorf("stock must not be negative, got %d", stock)
	}
	return Product{Kind: kind, ID: id, Name: name, Price: price, Stock: stock}, nil
}

// Sell removes qty units from stock. Stock is left untouched when the
// quantity is negative or exceeds the available units.
func (p *Product) Sell(qty int64) error {
	if qty < 0 {
		return fmt.Errorf("sell %d: %w", qty, ErrInvalidQuantity)
	}
	if qty > p.Stock {
		return fmt.Errorf("sell %d of %q with %d in stock: %w", qty, p.Name, p.Stock, ErrInsufficientStock)
	}
	p.Stock -= qty
	return nil
}

// Restock adds qty units to stock.
func (p *Product) Restock(qty int64) error {
	if qty < 0 {
		return fmt.Errorf("restock %d: %w", qty, ErrInvalidQuantity)
	}
	p.Stock += qty
	return nil
}

// Value returns price multiplied by units in stock.
func (p *Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Stock))
}

// ExpiredBy reports whether the product is an expired grocery as of the
// given date. The comparison is strict: a grocery expiring exactly on asOf
// is not yet expired. Non-grocery products never expire.
func (p *Product) ExpiredBy(asOf time.Time) bool {
	if p.Kind != KindGrocery {
		return false
	}
	return p.Expiry.Before(DateOf(asOf))
}

// DateOf truncates t to calendar date precision in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
