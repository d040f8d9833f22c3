package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/preordergh/storefront-core/internal/httpx"
	ord "github.com/preordergh/storefront-core/internal/order"
	"github.com/preordergh/storefront-core/internal/realtime"
)

type orderFeed = realtime.Subscription[[]ord.Order]

// trackSnapshot is what the tracking page receives on every change.
type trackSnapshot struct {
	Found bool      `json:"found"`
	Order *ord.View `json:"order,omitempty"`
}

// serveLive acquires the subscription before upgrading so bad input still
// gets a JSON error, then streams until the client leaves.
func serveLive(c *gin.Context, acquire func(ctx context.Context) (*orderFeed, error), render func([]ord.Order) any) {
	sub, err := acquire(c.Request.Context())
	if err != nil {
		abortOrder(c, err)
		return
	}
	defer sub.Release()

	conn, err := realtime.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if err := realtime.Stream(c.Request.Context(), conn, sub, render); err != nil {
		log.Printf("[live] %s closed: %v", sub.Key(), err)
	}
}

func renderViews(list []ord.Order) any { return ord.Views(list) }

func trackLiveHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		serveLive(c, func(ctx context.Context) (*orderFeed, error) {
			return svc.WatchCode(ctx, code)
		}, func(list []ord.Order) any {
			if len(list) == 0 {
				return trackSnapshot{}
			}
			v := ord.NewView(list[0])
			return trackSnapshot{Found: true, Order: &v}
		})
	}
}

func customerLiveHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, email := httpx.Customer(c)
		serveLive(c, func(ctx context.Context) (*orderFeed, error) {
			return svc.WatchCustomer(ctx, id, email)
		}, renderViews)
	}
}

func adminLiveHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		serveLive(c, svc.WatchAll, renderViews)
	}
}
