package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/preordergh/storefront-core/internal/httpx"
	"github.com/preordergh/storefront-core/internal/metrics"
	ord "github.com/preordergh/storefront-core/internal/order"
)

// swagger:model statsResponse
type statsResponse struct {
	TotalOrders       int    `json:"total_orders"`
	Revenue           string `json:"revenue" example:"1520.00"`
	PaidOrders        int    `json:"paid_orders"`
	PendingDeliveries int    `json:"pending_deliveries"`
}

// @Summary  Track an order by code
// @Tags     orders
// @Produce  json
// @Param    code path string true "order code, e.g. ORD-GH-2026-04821"
// @Success  200 {object} ord.View
// @Failure  400 {object} prod.HTTPError
// @Failure  404 {object} prod.HTTPError
// @Router   /track/{code} [get]
func trackOrderHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.GetByCode(c.Request.Context(), c.Param("code"))
		if err != nil {
			abortOrder(c, err)
			return
		}
		c.JSON(http.StatusOK, ord.NewView(*o))
	}
}

// @Summary   Orders of the signed-in customer
// @Tags      orders
// @Produce   json
// @Security  BearerAuth
// @Success   200 {array} ord.View
// @Router    /account/orders [get]
func customerOrdersHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, email := httpx.Customer(c)
		list, err := svc.ListForCustomer(c.Request.Context(), id, email)
		if err != nil {
			abortOrder(c, err)
			return
		}
		c.JSON(http.StatusOK, ord.Views(list))
	}
}

// @Summary   List orders
// @Tags      admin
// @Produce   json
// @Security  AdminKey
// @Param     status   query string false "order status"
// @Param     payment  query string false "payment status"
// @Param     q        query string false "search in code and customer name"
// @Success   200 {array} ord.View
// @Router    /admin/orders [get]
func adminListOrdersHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f ord.Filter
		if raw := c.Query("status"); raw != "" {
			s, err := ord.ParseStatus(raw)
			if err != nil {
				abortOrder(c, err)
				return
			}
			f.Status = s
		}
		if raw := c.Query("payment"); raw != "" {
			p, err := ord.ParsePaymentStatus(raw)
			if err != nil {
				abortOrder(c, err)
				return
			}
			f.Payment = p
		}
		f.Query = c.Query("q")

		list, err := svc.List(c.Request.Context(), f)
		if err != nil {
			abortOrder(c, err)
			return
		}
		c.JSON(http.StatusOK, ord.Views(list))
	}
}

// @Summary   Dashboard counters
// @Tags      admin
// @Produce   json
// @Security  AdminKey
// @Success   200 {object} statsResponse
// @Router    /admin/orders/stats [get]
func adminStatsHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := svc.Stats(c.Request.Context())
		if err != nil {
			abortOrder(c, err)
			return
		}
		c.JSON(http.StatusOK, statsResponse{
			TotalOrders:       st.TotalOrders,
			Revenue:           st.Revenue.StringFixed(2),
			PaidOrders:        st.PaidOrders,
			PendingDeliveries: st.PendingDeliveries,
		})
	}
}

// @Summary   Get an order
// @Tags      admin
// @Produce   json
// @Security  AdminKey
// @Param     id path string true "order id"
// @Success   200 {object} ord.View
// @Failure   404 {object} prod.HTTPError
// @Router    /admin/orders/{id} [get]
func adminGetOrderHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortOrder(c, err)
			return
		}
		c.JSON(http.StatusOK, ord.NewView(*o))
	}
}

// @Summary   Advance the order status
// @Tags      admin
// @Accept    json
// @Produce   json
// @Security  AdminKey
// @Param     id   path string true "order id"
// @Param     body body ord.UpdateStatusRequest true "target status"
// @Success   200 {object} ord.View
// @Failure   400 {object} prod.HTTPError
// @Failure   404 {object} prod.HTTPError
// @Failure   409 {object} prod.HTTPError
// @Router    /admin/orders/{id}/status [put]
func updateStatusHandler(svc *ord.Service, m *metrics.OrderMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		o, changed, err := svc.AdvanceStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			abortOrder(c, err)
			return
		}
		if changed && m != nil {
			m.Transitions.WithLabelValues(string(o.Status)).Inc()
		}
		c.JSON(http.StatusOK, ord.NewView(*o))
	}
}

// @Summary   Correct delivery fee, total or tracking number
// @Tags      admin
// @Accept    json
// @Produce   json
// @Security  AdminKey
// @Param     id   path string true "order id"
// @Param     body body ord.CorrectionRequest true "fields to change"
// @Success   200 {object} ord.View
// @Router    /admin/orders/{id} [patch]
func correctOrderHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.CorrectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		corr, err := req.Correction()
		if err != nil {
			abortOrder(c, err)
			return
		}
		o, err := svc.Correct(c.Request.Context(), c.Param("id"), corr)
		if err != nil {
			abortOrder(c, err)
			return
		}
		c.JSON(http.StatusOK, ord.NewView(*o))
	}
}
