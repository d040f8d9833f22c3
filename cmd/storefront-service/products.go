package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	prod "github.com/preordergh/storefront-core/internal/product"
)

// @Summary  List enabled products
// @Tags     products
// @Produce  json
// @Param    q       query  string false "search in name and description"
// @Param    limit   query  int    false "page size (max 100)"
// @Param    offset  query  int    false "offset"
// @Success  200 {object} prod.ListResponse
// @Router   /products [get]
func listProductsHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		if offset < 0 {
			offset = 0
		}
		q := prod.Query{Q: c.Query("q"), Limit: limit, Offset: offset}

		items, err := repo.ListEnabled(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, prod.HTTPError{Error: "could not list products"})
			return
		}
		views := make([]prod.View, 0, len(items))
		for _, p := range items {
			views = append(views, prod.NewView(p))
		}
		c.JSON(http.StatusOK, prod.ListResponse{Q: q.Q, Limit: limit, Offset: offset, Items: views})
	}
}
