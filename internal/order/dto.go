package order

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CheckoutRequest is sent by the storefront once the gateway reports success.
// swagger:model CheckoutRequest
type CheckoutRequest struct {
	PaymentReference string `json:"payment_reference" binding:"required" example:"T123456789"`
	FullName         string `json:"full_name"         binding:"required,trimmed_min=2" example:"Ama Mensah"`
	Phone            string `json:"phone"             binding:"required,ghphone" example:"0241234567"`
	Location         string `json:"location"          binding:"required,trimmed_min=5" example:"East Legon, Accra"`
	Email            string `json:"email"             binding:"omitempty,email" example:"ama@example.com"`
}

// UpdateStatusRequest payload for admin status changes.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"in_transit"`
}

// CorrectionRequest payload for admin field corrections. Omitted fields stay unchanged.
// swagger:model CorrectionRequest
type CorrectionRequest struct {
	DeliveryFee    *string `json:"delivery_fee"             example:"15.00"`
	TotalAmount    *string `json:"total_amount"             example:"40.50"`
	TrackingNumber *string `json:"shipment_tracking_number" example:"GH-TRK-0091"`
}

func (r CorrectionRequest) Correction() (Correction, error) {
	var c Correction
	if r.DeliveryFee != nil {
		d, err := decimal.NewFromString(*r.DeliveryFee)
		if err != nil {
			return c, fmt.Errorf("%w: delivery_fee is not a number", ErrValidation)
		}
		c.DeliveryFee = &d
	}
	if r.TotalAmount != nil {
		d, err := decimal.NewFromString(*r.TotalAmount)
		if err != nil {
			return c, fmt.Errorf("%w: total_amount is not a number", ErrValidation)
		}
		c.TotalAmount = &d
	}
	c.TrackingNumber = r.TrackingNumber
	return c, nil
}
