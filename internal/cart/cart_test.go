package cart

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/preordergh/storefront-core/internal/product"
)

func prod(id, price string) product.Product {
	return product.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    decimal.RequireFromString(price),
		Currency: "GHS",
		Images:   []string{"https://cdn.example/" + id + ".jpg"},
		Enabled:  true,
	}
}

func TestAddItemMergesQuantities(t *testing.T) {
	t.Parallel()
	c := New()
	p := prod("a", "10.00")
	if err := c.AddItem(p, 2); err != nil {
		t.Fatal(err)
	}
	if err := c.AddItem(p, 3); err != nil {
		t.Fatal(err)
	}
	lines := c.Lines()
	if len(lines) != 1 || lines[0].Quantity != 5 {
		t.Fatalf("lines = %+v", lines)
	}
}

func TestTotalIsExact(t *testing.T) {
	t.Parallel()
	c := New()
	_ = c.AddItem(prod("a", "10.00"), 2)
	_ = c.AddItem(prod("b", "5.50"), 1)
	if got := c.Total().StringFixed(2); got != "25.50" {
		t.Fatalf("total = %s", got)
	}
	if c.Count() != 3 || c.Len() != 2 {
		t.Fatalf("count=%d len=%d", c.Count(), c.Len())
	}
}

func TestTotalDoesNotDrift(t *testing.T) {
	t.Parallel()
	c := New()
	for i := 0; i < 1000; i++ {
		if err := c.AddItem(prod("dime", "0.10"), 1); err != nil {
			t.Fatal(err)
		}
	}
	if !c.Total().Equal(decimal.NewFromInt(100)) {
		t.Fatalf("1000 x 0.10 = %s", c.Total())
	}
}

func TestSnapshotIsKeptOnReAdd(t *testing.T) {
	t.Parallel()
	c := New()
	_ = c.AddItem(prod("a", "10.00"), 1)
	repriced := prod("a", "99.00")
	repriced.Name = "Renamed"
	_ = c.AddItem(repriced, 1)

	l := c.Lines()[0]
	if !l.Price.Equal(decimal.RequireFromString("10.00")) || l.Name != "Product a" || l.Quantity != 2 {
		t.Fatalf("snapshot overwritten: %+v", l)
	}
}

func TestAddItemRejects(t *testing.T) {
	t.Parallel()
	c := New()
	if err := c.AddItem(prod("a", "1"), 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("qty 0: %v", err)
	}
	if err := c.AddItem(prod("a", "1"), -2); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("negative qty: %v", err)
	}
	if err := c.AddItem(prod("", "1"), 1); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("no id: %v", err)
	}
	if err := c.AddItem(prod("a", "-1"), 1); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("negative price: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("rejected adds changed the cart")
	}
}

func TestSetQuantityAndRemove(t *testing.T) {
	t.Parallel()
	c := New()
	_ = c.AddItem(prod("a", "2.00"), 1)
	_ = c.AddItem(prod("b", "3.00"), 1)

	c.SetQuantity("a", 4)
	c.SetQuantity("missing", 9)
	if c.Count() != 5 || c.Len() != 2 {
		t.Fatalf("count=%d len=%d", c.Count(), c.Len())
	}
	c.SetQuantity("a", 0)
	if c.Len() != 1 || c.Lines()[0].ProductID != "b" {
		t.Fatalf("quantity 0 must remove the line: %+v", c.Lines())
	}
	c.RemoveItem("missing")
	c.RemoveItem("b")
	if c.Len() != 0 || !c.Total().IsZero() {
		t.Fatalf("cart not empty")
	}
}

func TestClear(t *testing.T) {
	t.Parallel()
	c := New()
	_ = c.AddItem(prod("a", "2.00"), 1)
	c.Clear()
	if c.Len() != 0 || c.Count() != 0 {
		t.Fatalf("clear left %d lines", c.Len())
	}
}

func TestLinesIsACopy(t *testing.T) {
	t.Parallel()
	c := New()
	_ = c.AddItem(prod("a", "2.00"), 1)
	lines := c.Lines()
	lines[0].Quantity = 100
	lines[0].Images[0] = "changed"
	if l := c.Lines()[0]; l.Quantity != 1 || l.Images[0] == "changed" {
		t.Fatalf("caller mutated the cart: %+v", l)
	}
}

func TestInsertionOrder(t *testing.T) {
	t.Parallel()
	c := New()
	for _, id := range []string{"c", "a", "b"} {
		_ = c.AddItem(prod(id, "1.00"), 1)
	}
	_ = c.AddItem(prod("a", "1.00"), 1)
	var got []string
	for _, l := range c.Lines() {
		got = append(got, l.ProductID)
	}
	if got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("order = %v", got)
	}
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	t.Parallel()
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.AddItem(prod("a", "0.25"), 1)
		}()
	}
	wg.Wait()
	if c.Count() != 100 || c.Len() != 1 {
		t.Fatalf("count=%d len=%d, lost updates", c.Count(), c.Len())
	}
	if c.Total().StringFixed(2) != "25.00" {
		t.Fatalf("total = %s", c.Total())
	}
}

func TestFromLinesDropsBrokenLines(t *testing.T) {
	t.Parallel()
	c := FromLines([]Line{
		{ProductID: "a", Price: decimal.NewFromInt(1), Quantity: 1},
		{ProductID: "a", Price: decimal.NewFromInt(1), Quantity: 4},
		{ProductID: "", Price: decimal.NewFromInt(1), Quantity: 1},
		{ProductID: "b", Price: decimal.NewFromInt(1), Quantity: 0},
	})
	if c.Len() != 1 || c.Count() != 1 {
		t.Fatalf("len=%d count=%d", c.Len(), c.Count())
	}
}

func TestQuantityIsCapped(t *testing.T) {
	t.Parallel()
	c := New()
	p := prod("a", "1.00")
	if err := c.AddItem(p, MaxQuantity); err != nil {
		t.Fatal(err)
	}
	if err := c.AddItem(p, 1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("add past cap: %v", err)
	}
	if err := c.AddItem(prod("b", "1.00"), math.MaxInt); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("huge add: %v", err)
	}
	if err := c.SetQuantity("a", MaxQuantity+1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("set past cap: %v", err)
	}
	if c.Count() != MaxQuantity || c.Len() != 1 || c.Total().IsNegative() {
		t.Fatalf("count=%d len=%d total=%s", c.Count(), c.Len(), c.Total())
	}
	if FromLines([]Line{{ProductID: "x", Price: decimal.NewFromInt(1), Quantity: MaxQuantity + 1}}).Len() != 0 {
		t.Fatalf("oversized stored line kept")
	}
}

func TestSnapshotMatchesLines(t *testing.T) {
	t.Parallel()
	c := New()
	_ = c.AddItem(prod("a", "12.75"), 2)
	_ = c.AddItem(prod("b", "0.10"), 3)
	lines, total := c.Snapshot()
	if len(lines) != 2 || total.StringFixed(2) != "25.80" {
		t.Fatalf("lines=%d total=%s", len(lines), total)
	}
	lines[0].Quantity = 50
	if c.Count() != 5 {
		t.Fatalf("snapshot shares state with the cart")
	}
}
