// Package cli implements the interactive menu loop driving the inventory
// service over a terminal.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/invsys/invctl/internal/service"
)

const dateLayout = "2006-01-02"

// Menu reads numbered choices from in and drives the inventory service.
// Failed operations are reported and the loop continues; only input
// exhaustion or an explicit exit ends a session.
type Menu struct {
	svc         service.InventoryService
	in          *bufio.Scanner
	out         io.Writer
	logger      *slog.Logger
	defaultFile string
}

// NewMenu creates a menu session. defaultFile is offered as the save/load
// path when the user enters none.
func NewMenu(svc service.InventoryService, in io.Reader, out io.Writer, logger *slog.Logger, defaultFile string) *Menu {
	return &Menu{
		svc:         svc,
		in:          bufio.NewScanner(in),
		out:         out,
		logger:      logger.With("component", "cli"),
		defaultFile: defaultFile,
	}
}

// Run loops until the user exits, input ends, or the context is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		m.printMenu()
		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			return m.in.Err()
		}
		switch strings.TrimSpace(choice) {
		case "1":
			m.addProduct()
		case "2":
			m.sellProduct()
		case "3":
			m.restockProduct()
		case "4":
			m.searchByName()
		case "5":
			m.searchByType()
		case "6":
			m.listAll()
		case "7":
			fmt.Fprintf(m.out, "Total inventory value: %s\n", m.svc.TotalValue().StringFixed(2))
		case "8":
			m.removeProduct()
		case "9":
			m.removeExpired()
		case "10":
			m.saveInventory()
		case "11":
			m.loadInventory()
		case "0":
			fmt.Fprintln(m.out, "Bye")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice")
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprint(m.out, `
Inventory Management
 1. Add product
 2. Sell product
 3. Restock product
 4. Search by name
 5. Search by type
 6. List all products
 7. Total inventory value
 8. Remove product
 9. Remove expired groceries
10. Save inventory
11. Load inventory
 0. Exit
`)
}

func (m *Menu) addProduct() {
	kind, ok := m.prompt("Product kind (Electronics/Grocery/Clothing): ")
	if !ok {
		return
	}
	input := service.ProductInput{Kind: strings.TrimSpace(kind)}

	if input.ID, ok = m.prompt("Product ID (blank to generate): "); !ok {
		return
	}
	input.ID = strings.TrimSpace(input.ID)
	if input.Name, ok = m.prompt("Name: "); !ok {
		return
	}
	if input.Price, ok = m.prompt("Price: "); !ok {
		return
	}
	input.Price = strings.TrimSpace(input.Price)
	stock, ok := m.promptInt("Quantity in stock: ")
	if !ok {
		return
	}
	input.Stock = stock

	switch input.Kind {
	case "Electronics":
		if input.Warranty, ok = m.prompt("Warranty period: "); !ok {
			return
		}
		if input.Brand, ok = m.prompt("Brand: "); !ok {
			return
		}
	case "Grocery":
		if input.Expiry, ok = m.prompt("Expiry date (YYYY-MM-DD): "); !ok {
			return
		}
		input.Expiry = strings.TrimSpace(input.Expiry)
	case "Clothing":
		if input.Size, ok = m.prompt("Size: "); !ok {
			return
		}
		if input.Material, ok = m.prompt("Material: "); !ok {
			return
		}
	}

	view, err := m.svc.Add(input)
	if err != nil {
		m.reportError(err)
		return
	}
	fmt.Fprintf(m.out, "Added %s\n", view)
}

func (m *Menu) sellProduct() {
	id, qty, ok := m.promptIDQuantity("Quantity to sell: ")
	if !ok {
		return
	}
	remaining, err := m.svc.Sell(id, qty)
	if err != nil {
		m.reportError(err)
		return
	}
	fmt.Fprintf(m.out, "Sold %d units, %d remaining\n", qty, remaining)
}

func (m *Menu) restockProduct() {
	id, qty, ok := m.promptIDQuantity("Quantity to restock: ")
	if !ok {
		return
	}
	stock, err := m.svc.Restock(id, qty)
	if err != nil {
		m.reportError(err)
		return
	}
	fmt.Fprintf(m.out, "Restocked %d units, %d in stock\n", qty, stock)
}

func (m *Menu) searchByName() {
	name, ok := m.prompt("Name to search: ")
	if !ok {
		return
	}
	m.printProducts(m.svc.SearchByName(strings.TrimSpace(name)))
}

func (m *Menu) searchByType() {
	kind, ok := m.prompt("Product kind (Electronics/Grocery/Clothing): ")
	if !ok {
		return
	}
	views, err := m.svc.SearchByType(kind)
	if err != nil {
		m.reportError(err)
		return
	}
	m.printProducts(views)
}

func (m *Menu) listAll() {
	views := m.svc.ListAll()
	if len(views) == 0 {
		fmt.Fprintln(m.out, "Inventory is empty")
		return
	}
	m.printProducts(views)
}

func (m *Menu) removeProduct() {
	id, ok := m.prompt("Product ID: ")
	if !ok {
		return
	}
	id = strings.TrimSpace(id)
	if err := m.svc.Remove(id); err != nil {
		m.reportError(err)
		return
	}
	fmt.Fprintf(m.out, "Removed %s\n", id)
}

func (m *Menu) removeExpired() {
	raw, ok := m.prompt("As-of date (YYYY-MM-DD, blank for today): ")
	if !ok {
		return
	}
	asOf := time.Now()
	if raw = strings.TrimSpace(raw); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			m.reportError(fmt.Errorf("invalid date %q", raw))
			return
		}
		asOf = parsed
	}
	removed := m.svc.RemoveExpired(asOf)
	fmt.Fprintf(m.out, "%d expired products removed\n", removed)
}

func (m *Menu) saveInventory() {
	path, ok := m.promptPath()
	if !ok {
		return
	}
	if err := m.svc.SaveFile(path); err != nil {
		m.reportError(err)
		return
	}
	fmt.Fprintf(m.out, "Inventory saved to %s\n", path)
}

func (m *Menu) loadInventory() {
	path, ok := m.promptPath()
	if !ok {
		return
	}
	count, err := m.svc.LoadFile(path)
	if err != nil {
		m.reportError(err)
		return
	}
	fmt.Fprintf(m.out, "Loaded %d products from %s\n", count, path)
}

func (m *Menu) printProducts(views []service.ProductView) {
	if len(views) == 0 {
		fmt.Fprintln(m.out, "No products found")
		return
	}
	for _, v := range views {
		fmt.Fprintln(m.out, v)
	}
}

func (m *Menu) promptIDQuantity(qtyLabel string) (string, int64, bool) {
	id, ok := m.prompt("Product ID: ")
	if !ok {
		return "", 0, false
	}
	qty, ok := m.promptInt(qtyLabel)
	if !ok {
		return "", 0, false
	}
	return strings.TrimSpace(id), qty, true
}

func (m *Menu) promptPath() (string, bool) {
	path, ok := m.prompt(fmt.Sprintf("File path (blank for %s): ", m.defaultFile))
	if !ok {
		return "", false
	}
	if path = strings.TrimSpace(path); path == "" {
		path = m.defaultFile
	}
	return path, true
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

func (m *Menu) promptInt(label string) (int64, bool) {
	raw, ok := m.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		m.reportError(fmt.Errorf("invalid number %q", strings.TrimSpace(raw)))
		return 0, false
	}
	return n, true
}

func (m *Menu) reportError(err error) {
	m.logger.Debug("operation failed", "error", err)
	if service.IsNotFound(err) {
		fmt.Fprintln(m.out, "Error: product not found")
		return
	}
	fmt.Fprintf(m.out, "Error: %v\n", err)
}
