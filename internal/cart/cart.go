// Package cart models the transient, in-memory pending sale assembled
// before checkout. Carts are never persisted; they are discarded on
// checkout completion or explicit cancel.
package cart

import (
	"context"
	"sync"

	"github.com/tillbook/tillbook/internal/catalog"
	"github.com/tillbook/tillbook/internal/shared"
)

// CatalogPort is the catalog lookup surface the cart depends on.
type CatalogPort interface {
	Get(ctx context.Context, id int64) (catalog.Product, error)
	CurrentPrice(ctx context.Context, id int64) (int64, error)
}

// Line is one pending (product, quantity) pair. Quantity is always positive.
type Line struct {
	ProductID int64
	Qty       int64
}

// PricedLine is a Line joined with the current catalog price. Prices here
// are display values only; checkout re-reads them under lock.
type PricedLine struct {
	ProductID      int64
	Name           string
	Qty            int64
	UnitPriceCents int64
	LineTotalCents int64
}

// Cart is a single-session mutable line collection. A mutex guards it since
// UI events may interleave with background reads.
type Cart struct {
	id      string
	catalog CatalogPort

	mu    sync.Mutex
	lines []Line
}

// New builds an empty cart bound to a catalog.
func New(id string, cat CatalogPort) *Cart {
	return &Cart{id: id, catalog: cat}
}

// ID returns the session identifier of this cart.
func (c *Cart) ID() string {
	return c.id
}

// AddLine appends qty units of a product, merging with an existing line for
// the same product. The product must exist and be active; no stock is
// deducted until checkout.
func (c *Cart) AddLine(ctx context.Context, productID, qty int64) error {
	if qty <= 0 {
		return shared.Validationf("qty", "must be a positive integer")
	}
	product, err := c.catalog.Get(ctx, productID)
	if err != nil {
		return err
	}
	if !product.Active {
		return shared.Validationf("product", "%q is not available", product.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Qty += qty
			return nil
		}
	}
	c.lines = append(c.lines, Line{ProductID: productID, Qty: qty})
	return nil
}

// RemoveLine drops the line for a product.
func (c *Cart) RemoveLine(productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// SetQty replaces the quantity on an existing line.
func (c *Cart) SetQty(productID, qty int64) error {
	if qty <= 0 {
		return shared.Validationf("qty", "must be a positive integer")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Qty = qty
			return nil
		}
	}
	return shared.ErrNotFound
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns the ordered line sequence as a copy.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// PricedLines joins the lines with current catalog names and prices.
func (c *Cart) PricedLines(ctx context.Context) ([]PricedLine, error) {
	lines := c.Lines()
	out := make([]PricedLine, 0, len(lines))
	for _, line := range lines {
		product, err := c.catalog.Get(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		out = append(out, PricedLine{
			ProductID:      line.ProductID,
			Name:           product.Name,
			Qty:            line.Qty,
			UnitPriceCents: product.PriceCents,
			LineTotalCents: product.PriceCents * line.Qty,
		})
	}
	return out, nil
}

// Total recomputes the cart total from current catalog prices on every
// call, so last-moment price changes show up before checkout.
func (c *Cart) Total(ctx context.Context) (int64, error) {
	var total int64
	for _, line := range c.Lines() {
		price, err := c.catalog.CurrentPrice(ctx, line.ProductID)
		if err != nil {
			return 0, err
		}
		total += price * line.Qty
	}
	return total, nil
}
