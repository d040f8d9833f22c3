package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID            string          `json:"id"`
	Code          string          `json:"order_code"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Location      string          `json:"location"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	CustomerID    string          `json:"customer_id,omitempty"`
	Items         []Item          `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	// unique; checkout is keyed on it
	PaymentReference string    `json:"payment_reference"`
	TrackingNumber   string    `json:"shipment_tracking_number,omitempty"`
	Status           Status    `json:"order_status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Item is a product snapshot taken at checkout. Later catalog edits never
// reach it.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Images    []string        `json:"images"`
	Quantity  int             `json:"quantity"`
}

func (it Item) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Subtotal is what the items cost without the delivery fee.
func (o *Order) Subtotal() decimal.Decimal {
	return o.TotalAmount.Sub(o.DeliveryFee)
}

// Correction holds the admin editable fields. Nil means unchanged.
type Correction struct {
	DeliveryFee    *decimal.Decimal
	TotalAmount    *decimal.Decimal
	TrackingNumber *string
}

func (c Correction) Empty() bool {
	return c.DeliveryFee == nil && c.TotalAmount == nil && c.TrackingNumber == nil
}
