package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/preordergh/storefront-core/internal/logging"
	"github.com/preordergh/storefront-core/internal/realtime"
)

var ErrValidation = errors.New("validation failed")

const maxCodeAttempts = 5

// Feed is the shared live query manager for order snapshots.
type Feed = realtime.Hub[[]Order]

type Service struct {
	repo  Repository
	feed  *Feed
	now   func() time.Time
	codes CodeGenerator
}

type Option func(*Service)

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithCodeGenerator(g CodeGenerator) Option { return func(s *Service) { s.codes = g } }

func WithFeed(f *Feed) Option { return func(s *Service) { s.feed = f } }

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		codes: RandomCode,
	}
	for _, o := range opts {
		o(s)
	}
	if s.feed == nil {
		s.feed = realtime.NewHub[[]Order]()
	}
	return s
}

func (s *Service) Feed() *Feed { return s.feed }

// NewOrder is what checkout knows once the gateway confirmed the payment.
type NewOrder struct {
	CustomerName     string
	CustomerPhone    string
	Location         string
	CustomerEmail    string
	CustomerID       string
	Items            []Item
	PaymentReference string
}

// Total is the sum of the line totals.
func (n NewOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range n.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func (n NewOrder) validate() error {
	switch {
	case strings.TrimSpace(n.PaymentReference) == "":
		return fmt.Errorf("%w: payment reference is required", ErrValidation)
	case strings.TrimSpace(n.CustomerName) == "":
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	case strings.TrimSpace(n.CustomerPhone) == "":
		return fmt.Errorf("%w: customer phone is required", ErrValidation)
	case len(n.Items) == 0:
		return fmt.Errorf("%w: an order needs at least one item", ErrValidation)
	}
	for _, it := range n.Items {
		if it.ProductID == "" {
			return fmt.Errorf("%w: item without product id", ErrValidation)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: quantity of %s must be at least 1", ErrValidation, it.ProductID)
		}
		if it.Price.IsNegative() {
			return fmt.Errorf("%w: price of %s is negative", ErrValidation, it.ProductID)
		}
	}
	return nil
}

// CreateFromPayment persists the order for a captured payment. It is keyed on
// the payment reference: replaying the same reference returns the stored order
// with created == false.
func (s *Service) CreateFromPayment(ctx context.Context, in NewOrder) (*Order, bool, error) {
	if err := in.validate(); err != nil {
		return nil, false, err
	}
	// postgres keeps microseconds
	now := s.now().Truncate(time.Microsecond)
	items := make([]Item, len(in.Items))
	for i, it := range in.Items {
		if it.Images == nil {
			it.Images = []string{}
		}
		items[i] = it
	}
	o := &Order{
		ID:               uuid.NewString(),
		CustomerName:     strings.TrimSpace(in.CustomerName),
		CustomerPhone:    strings.TrimSpace(in.CustomerPhone),
		Location:         strings.TrimSpace(in.Location),
		CustomerEmail:    strings.ToLower(strings.TrimSpace(in.CustomerEmail)),
		CustomerID:       in.CustomerID,
		Items:            items,
		TotalAmount:      in.Total(),
		DeliveryFee:      decimal.Zero,
		PaymentStatus:    PaymentPaid,
		PaymentReference: strings.TrimSpace(in.PaymentReference),
		Status:           InitialStatus(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		o.Code = s.codes(now)
		created, err := s.repo.Create(ctx, o)
		if errors.Is(err, ErrCodeTaken) {
			continue
		}
		if err != nil {
			return nil, false, err
		}
		if created {
			logging.Log(logging.Fields{Service: "orders", OrderID: o.ID, OrderCode: o.Code, Step: "create", Status: string(o.Status)})
			s.notify(ctx)
		} else {
			logging.Log(logging.Fields{Service: "orders", OrderID: o.ID, OrderCode: o.Code, Step: "create", Status: "replay"})
		}
		return o, created, nil
	}
	return nil, false, ErrCodeExhausted
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ByPaymentReference returns the order already created for a payment, if any.
func (s *Service) ByPaymentReference(ctx context.Context, ref string) (*Order, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrNotFound
	}
	return s.repo.GetByPaymentReference(ctx, ref)
}

// GetByCode looks an order up by its customer-facing code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Order, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, _, err := ParseCode(code); err != nil {
		return nil, err
	}
	return s.repo.GetByCode(ctx, code)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Order, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterOrders(all, f), nil
}

func (s *Service) ListForCustomer(ctx context.Context, customerID, email string) ([]Order, error) {
	return s.repo.ListByCustomer(ctx, customerID, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(all), nil
}

// AdvanceStatus moves an order forward. The raw status is validated before
// anything is read; setting the current status again is a no-op and reports
// changed == false.
func (s *Service) AdvanceStatus(ctx context.Context, id, raw string) (*Order, bool, error) {
	to, err := ParseStatus(raw)
	if err != nil {
		return nil, false, err
	}
	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if cur.Status == to {
		return cur, false, nil
	}
	if err := CanTransition(cur.Status, to); err != nil {
		return nil, false, err
	}
	updated, err := s.repo.UpdateStatus(ctx, id, cur.Status, to)
	if err != nil {
		return nil, false, err
	}
	logging.Log(logging.Fields{Service: "orders", OrderID: id, OrderCode: updated.Code, Step: "status", Status: string(to),
		Message: fmt.Sprintf("%s -> %s", cur.Status, to)})
	s.notify(ctx)
	return updated, true, nil
}

// Correct applies admin corrections (delivery fee, total, tracking number).
func (s *Service) Correct(ctx context.Context, id string, c Correction) (*Order, error) {
	if c.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if c.DeliveryFee != nil && c.DeliveryFee.IsNegative() {
		return nil, fmt.Errorf("%w: delivery fee cannot be negative", ErrValidation)
	}
	if c.TotalAmount != nil && !c.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be greater than 0", ErrValidation)
	}
	if c.TrackingNumber != nil {
		tn := strings.TrimSpace(*c.TrackingNumber)
		c.TrackingNumber = &tn
	}
	updated, err := s.repo.ApplyCorrection(ctx, id, c)
	if err != nil {
		return nil, err
	}
	logging.Log(logging.Fields{Service: "orders", OrderID: id, OrderCode: updated.Code, Step: "correct"})
	s.notify(ctx)
	return updated, nil
}

// WatchAll subscribes to every order, newest first.
func (s *Service) WatchAll(ctx context.Context) (*realtime.Subscription[[]Order], error) {
	return s.feed.Acquire(ctx, "orders:all", s.repo.ListAll)
}

// WatchCode subscribes to one order by code. A snapshot is empty while no
// order carries the code.
func (s *Service) WatchCode(ctx context.Context, code string) (*realtime.Subscription[[]Order], error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, _, err := ParseCode(code); err != nil {
		return nil, err
	}
	return s.feed.Acquire(ctx, "orders:code:"+code, func(ctx context.Context) ([]Order, error) {
		o, err := s.repo.GetByCode(ctx, code)
		if errors.Is(err, ErrNotFound) {
			return []Order{}, nil
		}
		if err != nil {
			return nil, err
		}
		return []Order{*o}, nil
	})
}

func (s *Service) WatchCustomer(ctx context.Context, customerID, email string) (*realtime.Subscription[[]Order], error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if customerID == "" && email == "" {
		return nil, fmt.Errorf("%w: customer id or email is required", ErrValidation)
	}
	return s.feed.Acquire(ctx, "orders:customer:"+customerID+"|"+email, func(ctx context.Context) ([]Order, error) {
		return s.repo.ListByCustomer(ctx, customerID, email)
	})
}

// Refresh pushes fresh snapshots to every live feed, e.g. after another
// instance changed an order.
func (s *Service) Refresh(ctx context.Context) error {
	return s.feed.Refresh(ctx)
}

func (s *Service) notify(ctx context.Context) {
	if err := s.feed.Refresh(ctx); err != nil {
		logging.Log(logging.Fields{Service: "orders", Step: "feed_refresh", Status: "error", Message: err.Error()})
	}
}
