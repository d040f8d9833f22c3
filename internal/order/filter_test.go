package order

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFilterAndSummarize(t *testing.T) {
	t.Parallel()
	orders := []Order{
		{Code: "ORD-GH-2026-10001", CustomerName: "Ama Mensah", Status: StatusDelivered, PaymentStatus: PaymentPaid, TotalAmount: decimal.RequireFromString("10.10")},
		{Code: "ORD-GH-2026-10002", CustomerName: "Kofi Boateng", Status: StatusInTransit, PaymentStatus: PaymentPaid, TotalAmount: decimal.RequireFromString("20.20")},
		{Code: "ORD-GH-2026-10003", CustomerName: "Esi Owusu", Status: StatusPaid, PaymentStatus: PaymentPending, TotalAmount: decimal.RequireFromString("0.30")},
	}

	if got := FilterOrders(orders, Filter{}); len(got) != 3 {
		t.Fatalf("empty filter kept %d", len(got))
	}
	if got := FilterOrders(orders, Filter{Status: StatusInTransit}); len(got) != 1 || got[0].CustomerName != "Kofi Boateng" {
		t.Fatalf("status filter = %v", got)
	}
	if got := FilterOrders(orders, Filter{Payment: PaymentPending}); len(got) != 1 {
		t.Fatalf("payment filter = %v", got)
	}
	if got := FilterOrders(orders, Filter{Query: "  MENSAH"}); len(got) != 1 {
		t.Fatalf("name search = %v", got)
	}
	if got := FilterOrders(orders, Filter{Query: "10003"}); len(got) != 1 || got[0].CustomerName != "Esi Owusu" {
		t.Fatalf("code search = %v", got)
	}

	st := Summarize(orders)
	if st.TotalOrders != 3 || st.PaidOrders != 2 || st.PendingDeliveries != 2 {
		t.Fatalf("stats = %+v", st)
	}
	if st.Revenue.StringFixed(2) != "30.60" {
		t.Fatalf("revenue = %s", st.Revenue)
	}
}

func TestViewDerivesProgress(t *testing.T) {
	t.Parallel()
	o := Order{
		Code:        "ORD-GH-2026-04821",
		Status:      StatusArrived,
		TotalAmount: decimal.RequireFromString("40.5"),
		DeliveryFee: decimal.RequireFromString("15"),
		Items:       []Item{{ProductID: "p", Price: decimal.RequireFromString("12.75"), Quantity: 2}},
	}
	v := NewView(o)
	if v.StatusIndex != 3 || v.Progress != 0.6 || v.Terminal {
		t.Fatalf("progress facts = %+v", v)
	}
	if len(v.NextStatuses) != 2 || v.NextStatuses[0] != StatusOutForDelivery {
		t.Fatalf("next = %v", v.NextStatuses)
	}
	if v.Subtotal != "25.50" || v.TotalAmount != "40.50" || v.DeliveryFee != "15.00" {
		t.Fatalf("money = %s %s %s", v.Subtotal, v.TotalAmount, v.DeliveryFee)
	}
	if v.Items[0].LineTotal != "25.50" || v.Items[0].Images == nil {
		t.Fatalf("item view = %+v", v.Items[0])
	}
	if v.StatusLabel != "arrived" {
		t.Fatalf("label = %s", v.StatusLabel)
	}
}

func TestValidPhone(t *testing.T) {
	t.Parallel()
	for _, p := range []string{"0241234567", "0201234567", "0551234567", " 0231234567 "} {
		if !ValidPhone(p) {
			t.Fatalf("%q should be valid", p)
		}
	}
	for _, p := range []string{"", "024123456", "02412345678", "0311234567", "+233241234567"} {
		if ValidPhone(p) {
			t.Fatalf("%q should be invalid", p)
		}
	}
}
