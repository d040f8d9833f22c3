package httpx

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/preordergh/storefront-core/internal/metrics"
)

var errNoIdentity = errors.New("token carries no customer identity")

const (
	AdminKeyHeader = "X-Admin-Key"

	ctxCustomerID    = "customer_id"
	ctxCustomerEmail = "customer_email"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("rid", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rid, _ := c.Get("rid")
		log.Printf("[http] rid=%v %s %s status=%d dur=%s",
			rid, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Metrics records request count and latency per route template.
func Metrics(m *metrics.ServerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	}
}

// AdminKey admits requests whose X-Admin-Key matches the bcrypt hash. An
// empty hash locks the group.
func AdminKey(hash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(AdminKeyHeader)
		if hash == "" || key == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing admin key"})
			return
		}
		c.Next()
	}
}

// CustomerClaims are issued by the identity provider the storefront signs in with.
type CustomerClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// CustomerAuth validates an HS256 bearer token and exposes the customer id
// (sub) and email to handlers.
func CustomerAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearer(c)
		if raw == "" || secret == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		claims, err := parseCustomer(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(ctxCustomerID, claims.Subject)
		c.Set(ctxCustomerEmail, claims.Email)
		c.Next()
	}
}

// OptionalCustomer is CustomerAuth for routes guests may use too: a valid
// token attaches the customer, anything else is ignored.
func OptionalCustomer(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearer(c); raw != "" && secret != "" {
			if claims, err := parseCustomer(raw, secret); err == nil {
				c.Set(ctxCustomerID, claims.Subject)
				c.Set(ctxCustomerEmail, claims.Email)
			}
		}
		c.Next()
	}
}

func bearer(c *gin.Context) string {
	raw := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	if raw == "" {
		// browsers cannot set headers on websocket upgrades
		raw = c.Query("access_token")
	}
	return raw
}

func parseCustomer(raw, secret string) (*CustomerClaims, error) {
	var claims CustomerClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || (claims.Subject == "" && claims.Email == "") {
		return nil, errNoIdentity
	}
	return &claims, nil
}

// Customer returns what CustomerAuth stored.
func Customer(c *gin.Context) (id, email string) {
	return c.GetString(ctxCustomerID), c.GetString(ctxCustomerEmail)
}
