package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrIllegalTransition    = errors.New("illegal status transition")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Status is the fulfillment stage of a pre-order.
type Status string

const (
	StatusPaid            Status = "paid"
	StatusSupplierOrdered Status = "supplier_ordered"
	StatusInTransit       Status = "in_transit"
	StatusArrived         Status = "arrived"
	StatusOutForDelivery  Status = "out_for_delivery"
	StatusDelivered       Status = "delivered"
)

// legacy tracking vocabulary still present in old documents
const (
	legacyProcessing Status = "processing"
	legacyPacked     Status = "packed"
)

// lifecycle is the canonical progress order. Index positions are part of the
// public contract used by every progress indicator.
var lifecycle = []Status{
	StatusPaid,
	StatusSupplierOrdered,
	StatusInTransit,
	StatusArrived,
	StatusOutForDelivery,
	StatusDelivered,
}

// Statuses returns the canonical sequence, first to last.
func Statuses() []Status {
	return append([]Status(nil), lifecycle...)
}

// InitialStatus is the state of every order at creation: it only exists once
// the payment was captured.
func InitialStatus() Status { return lifecycle[0] }

// StatusIndex returns the position of s in the canonical sequence, or -1.
func StatusIndex(s Status) int {
	for i, st := range lifecycle {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Status) Valid() bool { return StatusIndex(s) >= 0 }

func IsTerminal(s Status) bool {
	return s == lifecycle[len(lifecycle)-1]
}

// ProgressFraction sizes a progress bar: 0 for the first (or an unknown)
// status, 1 for the last.
func ProgressFraction(s Status) float64 {
	idx := StatusIndex(s)
	if idx <= 0 {
		return 0
	}
	last := len(lifecycle) - 1
	if last <= 0 {
		return 0
	}
	return float64(idx) / float64(last)
}

// AllowedNextStatuses lists every status an admin may move s to. Skipping
// intermediate stages is allowed; going back is not.
func AllowedNextStatuses(s Status) []Status {
	idx := StatusIndex(s)
	if idx < 0 {
		return []Status{}
	}
	return append([]Status{}, lifecycle[idx+1:]...)
}

// CanTransition reports whether an order in from may be moved to to.
// from == to is not a transition and is rejected here; callers treat it as a no-op.
func CanTransition(from, to Status) error {
	ti := StatusIndex(to)
	if ti < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	fi := StatusIndex(from)
	if fi < 0 {
		return fmt.Errorf("%w: current status %q is not canonical", ErrIllegalTransition, from)
	}
	if ti <= fi {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}

// ParseStatus validates raw input before it reaches persistence.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// NormalizeLegacy maps the retired tracking vocabulary onto the canonical
// chain. Canonical and unknown values come back unchanged.
func NormalizeLegacy(s Status) Status {
	switch s {
	case legacyProcessing:
		return StatusSupplierOrdered
	case legacyPacked:
		return StatusArrived
	default:
		return s
	}
}

// Label renders a status for humans ("out_for_delivery" -> "out for delivery").
func (s Status) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch p := PaymentStatus(strings.ToLower(strings.TrimSpace(raw))); p {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, raw)
	}
}
