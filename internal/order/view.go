package order

import "time"

// View is the order as every client renders it: money with two decimals and
// the progress facts derived from the current status.
// swagger:model OrderView
type View struct {
	ID               string     `json:"id"`
	Code             string     `json:"order_code" example:"ORD-GH-2026-04821"`
	CustomerName     string     `json:"customer_name"`
	CustomerPhone    string     `json:"customer_phone"`
	Location         string     `json:"location"`
	CustomerEmail    string     `json:"customer_email,omitempty"`
	CustomerID       string     `json:"customer_id,omitempty"`
	Items            []ItemView `json:"items"`
	Subtotal         string     `json:"subtotal" example:"25.50"`
	DeliveryFee      string     `json:"delivery_fee" example:"0.00"`
	TotalAmount      string     `json:"total_amount" example:"25.50"`
	PaymentStatus    string     `json:"payment_status" example:"paid"`
	PaymentReference string     `json:"payment_reference"`
	TrackingNumber   string     `json:"shipment_tracking_number,omitempty"`

	Status       Status   `json:"order_status" example:"in_transit"`
	StatusLabel  string   `json:"order_status_label" example:"in transit"`
	StatusIndex  int      `json:"status_index" example:"2"`
	Progress     float64  `json:"progress" example:"0.4"`
	Terminal     bool     `json:"terminal"`
	NextStatuses []Status `json:"next_statuses"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// swagger:model OrderItemView
type ItemView struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Price     string   `json:"price" example:"10.00"`
	Currency  string   `json:"currency" example:"GHS"`
	Images    []string `json:"images"`
	Quantity  int      `json:"quantity" example:"2"`
	LineTotal string   `json:"line_total" example:"20.00"`
}

func NewView(o Order) View {
	items := make([]ItemView, 0, len(o.Items))
	for _, it := range o.Items {
		images := it.Images
		if images == nil {
			images = []string{}
		}
		items = append(items, ItemView{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price.StringFixed(2),
			Currency:  it.Currency,
			Images:    images,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal().StringFixed(2),
		})
	}
	return View{
		ID:               o.ID,
		Code:             o.Code,
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		Location:         o.Location,
		CustomerEmail:    o.CustomerEmail,
		CustomerID:       o.CustomerID,
		Items:            items,
		Subtotal:         o.Subtotal().StringFixed(2),
		DeliveryFee:      o.DeliveryFee.StringFixed(2),
		TotalAmount:      o.TotalAmount.StringFixed(2),
		PaymentStatus:    string(o.PaymentStatus),
		PaymentReference: o.PaymentReference,
		TrackingNumber:   o.TrackingNumber,
		Status:           o.Status,
		StatusLabel:      o.Status.Label(),
		StatusIndex:      StatusIndex(o.Status),
		Progress:         ProgressFraction(o.Status),
		Terminal:         IsTerminal(o.Status),
		NextStatuses:     AllowedNextStatuses(o.Status),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func Views(orders []Order) []View {
	out := make([]View, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewView(o))
	}
	return out
}
