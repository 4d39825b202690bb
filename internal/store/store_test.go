package store

import (
	"testing"
	"time"

	"github.com/invsys/invctl/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func electronics(t *testing.T, id, name, price string, stock int64) domain.Product {
	t.Helper()
	p, err := domain.NewElectronics(id, name, decimal.RequireFromString(price), stock, "2 years", "TechCorp")
	require.NoError(t, err)
	return p
}

func grocery(t *testing.T, id, name, price string, stock int64, expiry string) domain.Product {
	t.Helper()
	p, err := domain.NewGrocery(id, name, decimal.RequireFromString(price), stock, date(expiry))
	require.NoError(t, err)
	return p
}

func clothing(t *testing.T, id, name, price string, stock int64) domain.Product {
	t.Helper()
	p, err := domain.NewClothing(id, name, decimal.RequireFromString(price), stock, "M", "Cotton")
	require.NoError(t, err)
	return p
}

func Test_Inventory_Add(t *testing.T) {
	// given
	inv := NewInventory()
	p := electronics(t, "E001", "Laptop", "999.99", 10)

	// when adding to an empty inventory
	require.NoError(t, inv.Add(p))
	// then list_all contains exactly that product
	all := inv.ListAll()
	require.Len(t, all, 1)
	assert.Equal(t, p, all[0])

	// when adding a duplicate ID
	err := inv.Add(electronics(t, "E001", "Other", "1.00", 1))
	// then the add fails and the inventory is unchanged
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
	all = inv.ListAll()
	require.Len(t, all, 1)
	assert.Equal(t, "Laptop", all[0].Name)
}

func Test_Inventory_Get(t *testing.T) {
	// given
	inv := NewInventory()
	require.NoError(t, inv.Add(electronics(t, "E001", "Laptop", "999.99", 10)))

	// when
	p, err := inv.Get("E001")
	// then
	require.NoError(t, err)
	assert.Equal(t, "Laptop", p.Name)

	// when the ID is absent
	_, err = inv.Get("missing")
	// then
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func Test_Inventory_Sell(t *testing.T) {
	testCases := []struct {
		name          string
		id            string
		qty           int64
		expectErr     error
		expectedStock int64
	}{
		{name: "Success", id: "E001", qty: 4, expectedStock: 6},
		{name: "Error - not found", id: "missing", qty: 1, expectErr: domain.ErrNotFound, expectedStock: 10},
		{name: "Error - insufficient stock", id: "E001", qty: 11, expectErr: domain.ErrInsufficientStock, expectedStock: 10},
		{name: "Error - negative quantity", id: "E001", qty: -2, expectErr: domain.ErrInvalidQuantity, expectedStock: 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			inv := NewInventory()
			require.NoError(t, inv.Add(electronics(t, "E001", "Laptop", "999.99", 10)))
			// when
			_, err := inv.Sell(tc.id, tc.qty)
			// then
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
			} else {
				assert.NoError(t, err)
			}
			stored, getErr := inv.Get("E001")
			require.NoError(t, getErr)
			assert.Equal(t, tc.expectedStock, stored.Stock)
		})
	}
}

func Test_Inventory_SellRestock_RoundTrip(t *testing.T) {
	// given
	inv := NewInventory()
	require.NoError(t, inv.Add(electronics(t, "E001", "Laptop", "999.99", 10)))

	// when
	remaining, err := inv.Sell("E001", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), remaining)
	stock, err := inv.Restock("E001", 7)
	require.NoError(t, err)

	// then stock is back at its original level
	assert.Equal(t, int64(10), stock)
}

func Test_Inventory_Restock_NotFound(t *testing.T) {
	inv := NewInventory()
	_, err := inv.Restock("missing", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func Test_Inventory_Remove(t *testing.T) {
	// given
	inv := NewInventory()
	require.NoError(t, inv.Add(electronics(t, "E001", "Laptop", "999.99", 10)))

	// when
	require.NoError(t, inv.Remove("E001"))
	// then
	assert.Equal(t, 0, inv.Len())
	assert.ErrorIs(t, inv.Remove("E001"), domain.ErrNotFound)
}

func Test_Inventory_SearchByName(t *testing.T) {
	// given
	inv := NewInventory()
	require.NoError(t, inv.Add(electronics(t, "E001", "Gaming Laptop", "999.99", 10)))
	require.NoError(t, inv.Add(electronics(t, "E002", "Mouse", "19.99", 50)))
	require.NoError(t, inv.Add(clothing(t, "C001", "Lapland Sweater", "49.90", 5)))

	// when searching case-insensitively
	var ids []string
	for p := range inv.SearchByName("LAP") {
		ids = append(ids, p.ID)
	}
	// then matches come back in insertion order
	assert.Equal(t, []string{"E001", "C001"}, ids)

	// and the sequence is restartable and reflects later mutations
	require.NoError(t, inv.Add(electronics(t, "E003", "Laptop Stand", "29.99", 7)))
	ids = nil
	for p := range inv.SearchByName("LAP") {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"E001", "C001", "E003"}, ids)
}

func Test_Inventory_SearchByName_EarlyBreak(t *testing.T) {
	// given
	inv := NewInventory()
	require.NoError(t, inv.Add(electronics(t, "E001", "Laptop", "999.99", 10)))
	require.NoError(t, inv.Add(electronics(t, "E002", "Laptop Pro", "1999.99", 2)))

	// when the consumer stops after the first match
	var ids []string
	for p := range inv.SearchByName("laptop") {
		ids = append(ids, p.ID)
		break
	}
	// then only one product was yielded
	assert.Equal(t, []string{"E001"}, ids)
}

func Test_Inventory_SearchByType(t *testing.T) {
	// given
	inv := NewInventory()
	require.NoError(t, inv.Add(electronics(t, "E001", "Laptop", "999.99", 10)))
	require.NoError(t, inv.Add(grocery(t, "G001", "Milk", "2.50", 100, "2026-01-01")))
	require.NoError(t, inv.Add(clothing(t, "C001", "Shirt", "19.90", 5)))

	// when
	var ids []string
	for p := range inv.SearchByType(domain.KindGrocery) {
		ids = append(ids, p.ID)
	}
	// then
	assert.Equal(t, []string{"G001"}, ids)
}

func Test_Inventory_ListAll_InsertionOrder(t *testing.T) {
	// given
	inv := NewInventory()
	require.NoError(t, inv.Add(electronics(t, "E002", "Mouse", "19.99", 50)))
	require.NoError(t, inv.Add(electronics(t, "E001", "Laptop", "999.99", 10)))
	require.NoError(t, inv.Add(grocery(t, "G001", "Milk", "2.50", 100, "2026-01-01")))

	// when
	all := inv.ListAll()
	// then order matches insertion, not ID order
	ids := make([]string, len(all))
	for i, p := range all {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"E002", "E001", "G001"}, ids)
}

func Test_Inventory_TotalValue(t *testing.T) {
	// given an empty inventory
	inv := NewInventory()
	// then its value is zero
	assert.True(t, inv.TotalValue().IsZero())

	// given the worked example: E001 at 999.99 x 10 and G001 at 2.50 x 100
	require.NoError(t, inv.Add(electronics(t, "E001", "Laptop", "999.99", 10)))
	require.NoError(t, inv.Add(grocery(t, "G001", "Old Milk", "2.50", 100, "2020-01-01")))

	// then
	assert.True(t, inv.TotalValue().Equal(decimal.RequireFromString("10249.90")), "got %s", inv.TotalValue())

	// when the expired grocery is removed as of 2024-01-01
	removed := inv.RemoveExpired(date("2024-01-01"))
	// then only the grocery is gone and the value drops accordingly
	assert.Equal(t, 1, removed)
	assert.True(t, inv.TotalValue().Equal(decimal.RequireFromString("9999.90")), "got %s", inv.TotalValue())
}

func Test_Inventory_RemoveExpired(t *testing.T) {
	// given
	inv := NewInventory()
	require.NoError(t, inv.Add(grocery(t, "G001", "Old Milk", "2.50", 10, "2023-12-31")))
	require.NoError(t, inv.Add(grocery(t, "G002", "Fresh Milk", "2.50", 10, "2024-01-01")))
	require.NoError(t, inv.Add(grocery(t, "G003", "Yogurt", "3.00", 10, "2024-06-01")))
	require.NoError(t, inv.Add(electronics(t, "E001", "Laptop", "999.99", 10)))

	// when
	removed := inv.RemoveExpired(date("2024-01-01"))

	// then only the strictly-expired grocery is removed
	assert.Equal(t, 1, removed)
	ids := make([]string, 0, inv.Len())
	for _, p := range inv.ListAll() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"G002", "G003", "E001"}, ids)

	// and a second pass removes nothing
	assert.Equal(t, 0, inv.RemoveExpired(date("2024-01-01")))
}

func Test_Inventory_MutationsDoNotLeakThroughCopies(t *testing.T) {
	// given
	inv := NewInventory()
	require.NoError(t, inv.Add(electronics(t, "E001", "Laptop", "999.99", 10)))

	// when a caller mutates a returned copy
	p, err := inv.Get("E001")
	require.NoError(t, err)
	p.Stock = 0

	// then the stored product is unaffected
	stored, err := inv.Get("E001")
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.Stock)
}
