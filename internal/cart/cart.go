// Package cart holds what a visitor intends to buy. A Cart serializes its own
// mutations; different carts share nothing.
package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/preordergh/storefront-core/internal/product"
)

// MaxQuantity caps a single line.
const MaxQuantity = 999

var (
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 999")
	ErrInvalidProduct  = errors.New("invalid product")
)

// Line is one product in the cart. The product fields are a snapshot taken
// the first time the product was added.
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Images    []string        `json:"images"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart { return &Cart{} }

// FromLines rebuilds a cart from stored lines, dropping anything that breaks
// the cart invariants.
func FromLines(lines []Line) *Cart {
	c := &Cart{}
	seen := map[string]bool{}
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 || l.Quantity > MaxQuantity || seen[l.ProductID] {
			continue
		}
		seen[l.ProductID] = true
		c.lines = append(c.lines, l)
	}
	return c
}

// AddItem adds qty of p. An existing line for p.ID grows by qty and keeps its
// original snapshot. A line never grows past MaxQuantity.
func (c *Cart) AddItem(p product.Product, qty int) error {
	if qty <= 0 || qty > MaxQuantity {
		return ErrInvalidQuantity
	}
	if p.ID == "" || p.Price.IsNegative() {
		return ErrInvalidProduct
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.find(p.ID); i >= 0 {
		if qty > MaxQuantity-c.lines[i].Quantity {
			return ErrInvalidQuantity
		}
		c.lines[i].Quantity += qty
		return nil
	}
	images := append([]string{}, p.Images...)
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Currency:  p.Currency,
		Images:    images,
		Quantity:  qty,
		AddedAt:   time.Now().UTC(),
	})
	return nil
}

// RemoveItem drops the line for productID. Absent ids are ignored.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(productID)
}

// SetQuantity overwrites the quantity of an existing line; qty <= 0 removes
// it. Absent ids are ignored, lines are never created here.
func (c *Cart) SetQuantity(productID string, qty int) error {
	if qty > MaxQuantity {
		return ErrInvalidQuantity
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if qty <= 0 {
		c.remove(productID)
		return nil
	}
	if i := c.find(productID); i >= 0 {
		c.lines[i].Quantity = qty
	}
	return nil
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Total is the sum of price * quantity over all lines, in exact decimal.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

// Count is the sum of quantities (badge number), not the number of lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Len is the number of distinct products.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLines()
}

// Snapshot returns the lines and their total under one lock, so the two
// always agree.
func (c *Cart) Snapshot() ([]Line, decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := c.copyLines()
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return lines, total
}

func (c *Cart) copyLines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		l.Images = append([]string{}, l.Images...)
		out[i] = l
	}
	return out
}

func (c *Cart) find(productID string) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) remove(productID string) {
	if i := c.find(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}
