// Package events carries order lifecycle events from the database outbox to
// kafka and back into the realtime feeds of every instance.
package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
	TypeOrderCorrected     = "order.corrected"
)

type Event struct {
	EventID   string         `json:"event_id"`
	Type      string         `json:"type"`
	OrderID   string         `json:"order_id"`
	OrderCode string         `json:"order_code"`
	CreatedAt time.Time      `json:"created_at"`
	Payload   map[string]any `json:"payload,omitempty"`
}

func New(typ, orderID, orderCode string, payload map[string]any) Event {
	return Event{
		EventID:   uuid.NewString(),
		Type:      typ,
		OrderID:   orderID,
		OrderCode: orderCode,
		CreatedAt: time.Now().UTC(),
		Payload:   payload,
	}
}
