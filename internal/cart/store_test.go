package cart

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreUpdateAndGet(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	empty, err := s.Get(ctx, "s1")
	if err != nil || empty.Len() != 0 {
		t.Fatalf("unknown session: %v %v", empty, err)
	}
	if _, err := s.Update(ctx, "s1", func(c *Cart) error { return c.AddItem(prod("a", "4.00"), 2) }); err != nil {
		t.Fatal(err)
	}
	c, _ := s.Get(ctx, "s1")
	if c.Count() != 2 {
		t.Fatalf("count = %d", c.Count())
	}
	other, _ := s.Get(ctx, "s2")
	if other.Len() != 0 {
		t.Fatalf("sessions share carts")
	}

	boom := errors.New("boom")
	if _, err := s.Update(ctx, "s1", func(*Cart) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}

	if err := s.Delete(ctx, "s1"); err != nil {
		t.Fatal(err)
	}
	if c, _ := s.Get(ctx, "s1"); c.Len() != 0 {
		t.Fatalf("deleted cart still has lines")
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore(time.Hour)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = s.Update(ctx, "old", func(c *Cart) error { return c.AddItem(prod("a", "1"), 1) })
	now = now.Add(50 * time.Minute)
	_, _ = s.Update(ctx, "fresh", func(c *Cart) error { return c.AddItem(prod("a", "1"), 1) })
	now = now.Add(20 * time.Minute)

	if n := s.Sweep(); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if c, _ := s.Get(ctx, "fresh"); c.Len() != 1 {
		t.Fatalf("fresh cart was swept")
	}
	if c, _ := s.Get(ctx, "old"); c.Len() != 0 {
		t.Fatalf("idle cart survived")
	}
}

func TestNewView(t *testing.T) {
	t.Parallel()
	c := New()
	_ = c.AddItem(prod("a", "10.00"), 2)
	_ = c.AddItem(prod("b", "5.5"), 1)
	v := NewView("s", c)
	if v.Total != "25.50" || v.Count != 3 || v.Distinct != 2 {
		t.Fatalf("view = %+v", v)
	}
	if v.Lines[1].Price != "5.50" || v.Lines[0].LineTotal != "20.00" {
		t.Fatalf("lines = %+v", v.Lines)
	}
}
