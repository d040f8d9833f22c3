package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/preordergh/storefront-core/internal/cart"
	"github.com/preordergh/storefront-core/internal/httpx"
	"github.com/preordergh/storefront-core/internal/logging"
	ord "github.com/preordergh/storefront-core/internal/order"
	"github.com/preordergh/storefront-core/internal/payment"
)

const supportMessage = "Your payment was received but we could not save your order. " +
	"Please contact support with your payment reference."

// swagger:model checkoutFailure
type checkoutFailure struct {
	Error            string `json:"error"`
	PaymentReference string `json:"payment_reference"`
}

func orderItems(lines []cart.Line) []ord.Item {
	items := make([]ord.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, ord.Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Currency:  l.Currency,
			Images:    l.Images,
			Quantity:  l.Quantity,
		})
	}
	return items
}

// @Summary  Create the order for a verified payment
// @Tags     checkout
// @Accept   json
// @Produce  json
// @Param    X-Cart-Session header string true "cart session"
// @Param    body body ord.CheckoutRequest true "payment reference and delivery details"
// @Success  201 {object} ord.View
// @Success  200 {object} ord.View "order already created for this payment"
// @Failure  400 {object} prod.HTTPError
// @Failure  402 {object} prod.HTTPError
// @Failure  500 {object} checkoutFailure
// @Failure  502 {object} prod.HTTPError
// @Router   /checkout [post]
func checkoutHandler(d deps) gin.HandlerFunc {
	count := func(result string) {
		if d.metrics != nil {
			d.metrics.Checkout.WithLabelValues(result).Inc()
		}
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var req ord.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			count("invalid")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		session, err := cartSession(c, false)
		if err != nil {
			count("invalid")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ref := strings.TrimSpace(req.PaymentReference)

		// a retried submission after success finds its order even though the cart is gone
		if existing, err := d.orders.ByPaymentReference(ctx, ref); err == nil {
			count("replay")
			if d.metrics != nil {
				d.metrics.Replayed.Inc()
			}
			c.JSON(http.StatusOK, ord.NewView(*existing))
			return
		} else if !errors.Is(err, ord.ErrNotFound) {
			count("error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not check existing orders"})
			return
		}

		crt, err := d.carts.Get(ctx, session)
		if err != nil {
			count("error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
			return
		}
		lines, total := crt.Snapshot()
		if len(lines) == 0 {
			count("invalid")
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}

		tx, err := d.payments.Verify(ctx, ref)
		switch {
		case errors.Is(err, payment.ErrUnknownPayment):
			count("unpaid")
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment not found"})
			return
		case err != nil:
			count("gateway_error")
			logging.Log(logging.Fields{Service: "checkout", Step: "verify", Status: "error", Message: err.Error()})
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not reach the payment gateway, please try again"})
			return
		}
		if err := payment.CheckPaid(tx, total, d.currency); err != nil {
			count("unpaid")
			logging.Log(logging.Fields{Service: "checkout", Step: "verify", Status: "rejected", Message: err.Error()})
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
			return
		}

		customerID, customerEmail := httpx.Customer(c)
		email := strings.TrimSpace(req.Email)
		if email == "" {
			email = customerEmail
		}
		if email == "" {
			email = tx.CustomerEmail
		}

		o, created, err := d.orders.CreateFromPayment(ctx, ord.NewOrder{
			CustomerName:     req.FullName,
			CustomerPhone:    req.Phone,
			Location:         req.Location,
			CustomerEmail:    email,
			CustomerID:       customerID,
			Items:            orderItems(lines),
			PaymentReference: ref,
		})
		if err != nil {
			count("persist_error")
			logging.Log(logging.Fields{Service: "checkout", Step: "persist", Status: "error",
				Message: ref + ": " + err.Error()})
			c.JSON(http.StatusInternalServerError, checkoutFailure{Error: supportMessage, PaymentReference: ref})
			return
		}

		if err := d.carts.Delete(ctx, session); err != nil {
			logging.Log(logging.Fields{Service: "checkout", OrderID: o.ID, Step: "clear_cart", Status: "error", Message: err.Error()})
		}
		if !created {
			count("replay")
			if d.metrics != nil {
				d.metrics.Replayed.Inc()
			}
			c.JSON(http.StatusOK, ord.NewView(*o))
			return
		}
		count("created")
		if d.metrics != nil {
			d.metrics.Created.Inc()
		}
		c.JSON(http.StatusCreated, ord.NewView(*o))
	}
}
