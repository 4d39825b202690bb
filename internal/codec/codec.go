// Package codec persists an inventory to and from a JSON file. Each record
// carries a "kind" discriminant naming the product variant; loading dispatches
// on it to rebuild the right variant.
package codec

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/invsys/invctl/internal/domain"
	"github.com/invsys/invctl/internal/store"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of grocery expiry dates.
const DateLayout = "2006-01-02"

// FormatError describes a malformed record in a persisted inventory file.
// Index is the zero-based position of the record in the array, or -1 when
// the document as a whole could not be parsed.
type FormatError struct {
	Index  int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("inventory file: %s", e.Reason)
	}
	return fmt.Sprintf("inventory record %d: %s", e.Index, e.Reason)
}

// record is the wire form of one product. Price is a json.Number so the file
// carries a bare numeric literal that round-trips without float conversion;
// the pointer stock distinguishes an absent value from a zero one at load time.
type record struct {
	Kind     string      `json:"kind"`
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price,omitempty"`
	Stock    *int64      `json:"stock"`
	Warranty string      `json:"warranty_period,omitempty"`
	Brand    string      `json:"brand,omitempty"`
	Expiry   string      `json:"expiry_date,omitempty"`
	Size     string      `json:"size,omitempty"`
	Material string      `json:"material,omitempty"`
}

// Save writes all products of the inventory to path as a JSON array, in
// insertion order.
func Save(inv *store.Inventory, path string) error {
	products := inv.ListAll()
	records := make([]record, len(products))
	for i, p := range products {
		records[i] = toRecord(p)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write inventory file: %w", err)
	}
	return nil
}

// Load reads a JSON inventory file and returns a fresh inventory built from
// it. Records with an unknown kind, missing required fields or invalid values
// fail with a *FormatError; the duplicate-ID invariant is enforced for loaded
// data the same way it is for interactive additions.
func Load(path string) (*store.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory file: %w", err)
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &FormatError{Index: -1, Reason: err.Error()}
	}
	inv := store.NewInventory()
	for i, rec := range records {
		p, err := toProduct(rec)
		if err != nil {
			return nil, &FormatError{Index: i, Reason: err.Error()}
		}
		if err := inv.Add(p); err != nil {
			return nil, &FormatError{Index: i, Reason: fmt.Sprintf("duplicate id %q", rec.ID)}
		}
	}
	return inv, nil
}

func toRecord(p domain.Product) record {
	stock := p.Stock
	rec := record{
		Kind:  string(p.Kind),
		ID:    p.ID,
		Name:  p.Name,
		Price: json.Number(p.Price.String()),
		Stock: &stock,
	}
	switch p.Kind {
	case domain.KindElectronics:
		rec.Warranty = p.Warranty
		rec.Brand = p.Brand
	case domain.KindGrocery:
		rec.Expiry = p.Expiry.Format(DateLayout)
	case domain.KindClothing:
		rec.Size = p.Size
		rec.Material = p.Material
	}
	return rec
}

func toProduct(rec record) (domain.Product, error) {
	kind, err := domain.ParseKind(rec.Kind)
	if err != nil {
		if rec.Kind == "" {
			return domain.Product{}, fmt.Errorf("missing kind")
		}
		return domain.Product{}, err
	}
	if rec.ID == "" {
		return domain.Product{}, fmt.Errorf("missing id")
	}
	if rec.Name == "" {
		return domain.Product{}, fmt.Errorf("missing name")
	}
	if rec.Price == "" {
		return domain.Product{}, fmt.Errorf("missing price")
	}
	price, err := decimal.NewFromString(rec.Price.String())
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid price %q", rec.Price)
	}
	if rec.Stock == nil {
		return domain.Product{}, fmt.Errorf("missing stock")
	}

	switch kind {
	case domain.KindElectronics:
		if rec.Warranty == "" {
			return domain.Product{}, fmt.Errorf("missing warranty_period")
		}
		if rec.Brand == "" {
			return domain.Product{}, fmt.Errorf("missing brand")
		}
		return domain.NewElectronics(rec.ID, rec.Name, price, *rec.Stock, rec.Warranty, rec.Brand)
	case domain.KindGrocery:
		if rec.Expiry == "" {
			return domain.Product{}, fmt.Errorf("missing expiry_date")
		}
		expiry, err := time.Parse(DateLayout, rec.Expiry)
		if err != nil {
			return domain.Product{}, fmt.Errorf("invalid expiry_date %q", rec.Expiry)
		}
		return domain.NewGrocery(rec.ID, rec.Name, price, *rec.Stock, expiry)
	default:
		if rec.Size == "" {
			return domain.Product{}, fmt.Errorf("missing size")
		}
		if rec.Material == "" {
			return domain.Product{}, fmt.Errorf("missing material")
		}
		return domain.NewClothing(rec.ID, rec.Name, price, *rec.Stock, rec.Size, rec.Material)
	}
}
