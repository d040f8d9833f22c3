package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var ErrConflict = errors.New("cart was modified concurrently")

// Store keeps one cart per visitor session.
type Store interface {
	// Get returns the cart of session, empty when it does not exist yet.
	Get(ctx context.Context, session string) (*Cart, error)
	// Update applies fn to the cart of session and persists the result.
	Update(ctx context.Context, session string, fn func(*Cart) error) (*Cart, error)
	Delete(ctx context.Context, session string) error
}

type memEntry struct {
	cart    *Cart
	touched time.Time
}

// MemoryStore keeps carts in process. Idle carts are dropped by Sweep.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]*memEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{carts: map[string]*memEntry{}, ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, session string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.carts[session]; ok {
		e.touched = s.now()
		return e.cart, nil
	}
	return New(), nil
}

func (s *MemoryStore) Update(_ context.Context, session string, fn func(*Cart) error) (*Cart, error) {
	s.mu.Lock()
	e, ok := s.carts[session]
	if !ok {
		e = &memEntry{cart: New()}
		s.carts[session] = e
	}
	e.touched = s.now()
	s.mu.Unlock()

	if err := fn(e.cart); err != nil {
		return nil, err
	}
	return e.cart, nil
}

func (s *MemoryStore) Delete(_ context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, session)
	return nil
}

// Sweep drops carts idle for longer than the TTL and returns how many went.
func (s *MemoryStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	n := 0
	for k, e := range s.carts {
		if e.touched.Before(cutoff) {
			delete(s.carts, k)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}

// View is the cart as the storefront renders it.
// swagger:model CartView
type View struct {
	Session  string     `json:"session_id"`
	Lines    []LineView `json:"lines"`
	Total    string     `json:"total" example:"25.50"`
	Count    int        `json:"count" example:"3"`
	Distinct int        `json:"distinct" example:"2"`
}

// swagger:model CartLineView
type LineView struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Price     string   `json:"price" example:"10.00"`
	Currency  string   `json:"currency" example:"GHS"`
	Images    []string `json:"images"`
	Quantity  int      `json:"quantity" example:"2"`
	LineTotal string   `json:"line_total" example:"20.00"`
}

func NewView(session string, c *Cart) View {
	lines := c.Lines()
	out := View{Session: session, Lines: make([]LineView, 0, len(lines))}
	total := decimal.Zero
	for _, l := range lines {
		out.Lines = append(out.Lines, LineView{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.StringFixed(2),
			Currency:  l.Currency,
			Images:    l.Images,
			Quantity:  l.Quantity,
			LineTotal: l.Total().StringFixed(2),
		})
		total = total.Add(l.Total())
		out.Count += l.Quantity
	}
	out.Distinct = len(lines)
	out.Total = total.StringFixed(2)
	return out
}
