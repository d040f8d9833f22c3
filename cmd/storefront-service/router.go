package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/preordergh/storefront-core/docs"
	"github.com/preordergh/storefront-core/internal/cart"
	"github.com/preordergh/storefront-core/internal/httpx"
	"github.com/preordergh/storefront-core/internal/metrics"
	"github.com/preordergh/storefront-core/internal/order"
	"github.com/preordergh/storefront-core/internal/payment"
	"github.com/preordergh/storefront-core/internal/product"
)

// deps is everything the handlers reach.
type deps struct {
	orders   *order.Service
	products product.Repository
	carts    cart.Store
	payments payment.Verifier
	metrics  *metrics.OrderMetrics
	currency string

	adminKeyHash string
	jwtSecret    string
	// nil in tests
	ping func(ctx context.Context) error
}

func registerRoutes(r *gin.Engine, d deps) {
	r.GET("/healthz", healthHandler(d.ping))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/products", listProductsHandler(d.products))

	r.GET("/track/:code", trackOrderHandler(d.orders))
	r.GET("/track/:code/live", trackLiveHandler(d.orders))

	r.GET("/cart", getCartHandler(d.carts))
	r.POST("/cart/items", addCartItemHandler(d.carts, d.products, d.currency))
	r.PUT("/cart/items/:product_id", setCartQuantityHandler(d.carts))
	r.DELETE("/cart/items/:product_id", removeCartItemHandler(d.carts))
	r.DELETE("/cart", clearCartHandler(d.carts))

	r.POST("/checkout", httpx.OptionalCustomer(d.jwtSecret), checkoutHandler(d))

	account := r.Group("/account", httpx.CustomerAuth(d.jwtSecret))
	account.GET("/orders", customerOrdersHandler(d.orders))
	account.GET("/orders/live", customerLiveHandler(d.orders))

	admin := r.Group("/admin", httpx.AdminKey(d.adminKeyHash))
	admin.GET("/orders", adminListOrdersHandler(d.orders))
	admin.GET("/orders/stats", adminStatsHandler(d.orders))
	admin.GET("/orders/live", adminLiveHandler(d.orders))
	admin.GET("/orders/:id", adminGetOrderHandler(d.orders))
	admin.PUT("/orders/:id/status", updateStatusHandler(d.orders, d.metrics))
	admin.PATCH("/orders/:id", correctOrderHandler(d.orders))
}

func healthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// orderStatusCode maps order errors to HTTP codes.
func orderStatusCode(err error) int {
	switch {
	case errors.Is(err, order.ErrValidation),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidPaymentStatus),
		errors.Is(err, order.ErrInvalidCode):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, order.ErrStatusConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortOrder(c *gin.Context, err error) {
	code := orderStatusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
		_ = c.Error(err)
	}
	c.JSON(code, gin.H{"error": msg})
}
