package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/preordergh/storefront-core/internal/cart"
	prod "github.com/preordergh/storefront-core/internal/product"
)

const cartSessionHeader = "X-Cart-Session"

var errBadSession = errors.New("X-Cart-Session must be a UUID")

// swagger:model addItemRequest
type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"   binding:"required,min=1,max=999" example:"1"`
}

// swagger:model setQuantityRequest
type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0,max=999" example:"3"`
}

// cartSession reads the session header. When create is set and the header is
// missing a fresh session is minted; either way it is echoed back.
func cartSession(c *gin.Context, create bool) (string, error) {
	s := strings.TrimSpace(c.GetHeader(cartSessionHeader))
	if s == "" {
		if !create {
			return "", errBadSession
		}
		s = uuid.NewString()
	} else if _, err := uuid.Parse(s); err != nil {
		return "", errBadSession
	}
	c.Writer.Header().Set(cartSessionHeader, s)
	return s, nil
}

func cartStatusCode(err error) int {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, cart.ErrInvalidProduct):
		return http.StatusBadRequest
	case errors.Is(err, cart.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// @Summary  Current cart of the session
// @Tags     cart
// @Produce  json
// @Param    X-Cart-Session header string false "cart session (minted when absent)"
// @Success  200 {object} cart.View
// @Router   /cart [get]
func getCartHandler(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := cartSession(c, true)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		crt, err := store.Get(c.Request.Context(), session)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
			return
		}
		c.JSON(http.StatusOK, cart.NewView(session, crt))
	}
}

// @Summary  Add a product to the cart
// @Tags     cart
// @Accept   json
// @Produce  json
// @Param    X-Cart-Session header string false "cart session (minted when absent)"
// @Param    body body addItemRequest true "product and quantity"
// @Success  200 {object} cart.View
// @Failure  400 {object} prod.HTTPError
// @Failure  404 {object} prod.HTTPError
// @Router   /cart/items [post]
func addCartItemHandler(store cart.Store, products prod.Repository, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := cartSession(c, true)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		p, err := products.GetEnabled(c.Request.Context(), req.ProductID)
		if errors.Is(err, prod.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load product"})
			return
		}
		if !strings.EqualFold(p.Currency, currency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product is not sold in " + currency})
			return
		}

		crt, err := store.Update(c.Request.Context(), session, func(crt *cart.Cart) error {
			return crt.AddItem(*p, req.Quantity)
		})
		if err != nil {
			c.JSON(cartStatusCode(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cart.NewView(session, crt))
	}
}

// @Summary  Set the quantity of a line, 0 removes it
// @Tags     cart
// @Accept   json
// @Produce  json
// @Param    X-Cart-Session header string true "cart session"
// @Param    product_id path string true "product id"
// @Param    body body setQuantityRequest true "new quantity"
// @Success  200 {object} cart.View
// @Router   /cart/items/{product_id} [put]
func setCartQuantityHandler(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := cartSession(c, false)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		id := c.Param("product_id")
		crt, err := store.Update(c.Request.Context(), session, func(crt *cart.Cart) error {
			return crt.SetQuantity(id, *req.Quantity)
		})
		if err != nil {
			c.JSON(cartStatusCode(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cart.NewView(session, crt))
	}
}

// @Summary  Remove a line
// @Tags     cart
// @Produce  json
// @Param    X-Cart-Session header string true "cart session"
// @Param    product_id path string true "product id"
// @Success  200 {object} cart.View
// @Router   /cart/items/{product_id} [delete]
func removeCartItemHandler(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := cartSession(c, false)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		id := c.Param("product_id")
		crt, err := store.Update(c.Request.Context(), session, func(crt *cart.Cart) error {
			crt.RemoveItem(id)
			return nil
		})
		if err != nil {
			c.JSON(cartStatusCode(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cart.NewView(session, crt))
	}
}

// @Summary  Empty the cart
// @Tags     cart
// @Produce  json
// @Param    X-Cart-Session header string true "cart session"
// @Success  200 {object} cart.View
// @Router   /cart [delete]
func clearCartHandler(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := cartSession(c, false)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := store.Delete(c.Request.Context(), session); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear cart"})
			return
		}
		c.JSON(http.StatusOK, cart.NewView(session, cart.New()))
	}
}
