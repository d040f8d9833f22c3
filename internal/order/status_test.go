package order

import (
	"errors"
	"testing"
)

func TestStatusIndex(t *testing.T) {
	t.Parallel()
	want := map[Status]int{
		StatusPaid:            0,
		StatusSupplierOrdered: 1,
		StatusInTransit:       2,
		StatusArrived:         3,
		StatusOutForDelivery:  4,
		StatusDelivered:       5,
		"processing":          -1,
		"packed":              -1,
		"":                    -1,
		"Paid":                -1,
	}
	for s, idx := range want {
		if got := StatusIndex(s); got != idx {
			t.Fatalf("StatusIndex(%q)=%d, want %d", s, got, idx)
		}
	}
}

func TestIsTerminalOnlyDelivered(t *testing.T) {
	t.Parallel()
	for _, s := range Statuses() {
		if IsTerminal(s) != (s == StatusDelivered) {
			t.Fatalf("IsTerminal(%s)=%v", s, IsTerminal(s))
		}
	}
	if IsTerminal("packed") {
		t.Fatalf("unknown status must not be terminal")
	}
}

func TestProgressFraction(t *testing.T) {
	t.Parallel()
	cases := map[Status]float64{
		StatusPaid:           0,
		StatusInTransit:      0.4,
		StatusOutForDelivery: 0.8,
		StatusDelivered:      1,
		"processing":         0,
	}
	for s, want := range cases {
		if got := ProgressFraction(s); got < want-1e-9 || got > want+1e-9 {
			t.Fatalf("ProgressFraction(%s)=%v, want %v", s, got, want)
		}
	}
}

func TestAllowedNextStatuses(t *testing.T) {
	t.Parallel()
	next := AllowedNextStatuses(StatusInTransit)
	if len(next) != 3 || next[0] != StatusArrived || next[2] != StatusDelivered {
		t.Fatalf("next of in_transit = %v", next)
	}
	if got := AllowedNextStatuses(StatusDelivered); got == nil || len(got) != 0 {
		t.Fatalf("terminal must have an empty, non-nil list: %#v", got)
	}
	if got := AllowedNextStatuses("packed"); len(got) != 0 {
		t.Fatalf("unknown status has no successors: %v", got)
	}

	// every returned status is a legal move, nothing else is
	for _, from := range Statuses() {
		allowed := map[Status]bool{}
		for _, s := range AllowedNextStatuses(from) {
			allowed[s] = true
		}
		for _, to := range Statuses() {
			if (CanTransition(from, to) == nil) != allowed[to] {
				t.Fatalf("%s -> %s disagrees with AllowedNextStatuses", from, to)
			}
		}
	}
}

func TestCanTransition(t *testing.T) {
	t.Parallel()
	if err := CanTransition(StatusPaid, StatusArrived); err != nil {
		t.Fatalf("skipping forward must be allowed: %v", err)
	}
	if err := CanTransition(StatusArrived, StatusPaid); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("backward: %v", err)
	}
	if err := CanTransition(StatusArrived, StatusArrived); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("same status is not a transition: %v", err)
	}
	if err := CanTransition(StatusPaid, "shipped"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("unknown target: %v", err)
	}
	if err := CanTransition("processing", StatusDelivered); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("legacy source: %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()
	s, err := ParseStatus("  Out_For_Delivery ")
	if err != nil || s != StatusOutForDelivery {
		t.Fatalf("got %q, %v", s, err)
	}
	for _, raw := range []string{"", "packed", "processing", "cancelled"} {
		if _, err := ParseStatus(raw); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("ParseStatus(%q) err=%v", raw, err)
		}
	}
}

func TestNormalizeLegacy(t *testing.T) {
	t.Parallel()
	if NormalizeLegacy("processing") != StatusSupplierOrdered || NormalizeLegacy("packed") != StatusArrived {
		t.Fatalf("legacy mapping changed")
	}
	if NormalizeLegacy(StatusInTransit) != StatusInTransit || NormalizeLegacy("weird") != "weird" {
		t.Fatalf("non-legacy values must pass through")
	}
}

func TestInitialStatusAndLabel(t *testing.T) {
	t.Parallel()
	if InitialStatus() != StatusPaid {
		t.Fatalf("initial status = %s", InitialStatus())
	}
	if StatusOutForDelivery.Label() != "out for delivery" {
		t.Fatalf("label = %q", StatusOutForDelivery.Label())
	}
	if _, err := ParsePaymentStatus("refunded"); !errors.Is(err, ErrInvalidPaymentStatus) {
		t.Fatalf("payment status: %v", err)
	}
}
