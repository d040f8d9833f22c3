package order

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Filter narrows the admin order list. Zero values match everything.
type Filter struct {
	Status  Status
	Payment PaymentStatus
	// matched case-insensitively against the order code and customer name
	Query string
}

func (f Filter) Match(o Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.Payment != "" && o.PaymentStatus != f.Payment {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		return strings.Contains(strings.ToLower(o.Code), q) ||
			strings.Contains(strings.ToLower(o.CustomerName), q)
	}
	return true
}

func FilterOrders(orders []Order, f Filter) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	return out
}

// Stats backs the admin dashboard.
type Stats struct {
	TotalOrders       int             `json:"total_orders"`
	Revenue           decimal.Decimal `json:"-"`
	PaidOrders        int             `json:"paid_orders"`
	PendingDeliveries int             `json:"pending_deliveries"`
}

func Summarize(orders []Order) Stats {
	st := Stats{TotalOrders: len(orders), Revenue: decimal.Zero}
	for _, o := range orders {
		st.Revenue = st.Revenue.Add(o.TotalAmount)
		if o.PaymentStatus == PaymentPaid {
			st.PaidOrders++
		}
		if !IsTerminal(o.Status) {
			st.PendingDeliveries++
		}
	}
	return st
}
