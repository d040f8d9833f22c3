package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/preordergh/storefront-core/internal/cart"
	"github.com/preordergh/storefront-core/internal/config"
	"github.com/preordergh/storefront-core/internal/db"
	"github.com/preordergh/storefront-core/internal/events"
	"github.com/preordergh/storefront-core/internal/httpx"
	"github.com/preordergh/storefront-core/internal/metrics"
	"github.com/preordergh/storefront-core/internal/order"
	"github.com/preordergh/storefront-core/internal/payment"
	"github.com/preordergh/storefront-core/internal/product"
)

// @title        Storefront API
// @version      1.0
// @description  Orders, carts and checkout for the pre-order storefront.
// @BasePath     /
// @securityDefinitions.apikey AdminKey
// @in   header
// @name X-Admin-Key
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer pool.Close()
	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("%v", err)
	}
	ping := func(ctx context.Context) error { return db.Ping(ctx, pool) }

	orderRepo := order.NewPGRepo(pool, cfg.OrderEventsTopic)
	if cfg.MigrateLegacyStatuses {
		n, err := orderRepo.MigrateLegacyStatuses(ctx)
		if err != nil {
			log.Fatalf("legacy status migration: %v", err)
		}
		log.Printf("[migrate] %d orders moved off legacy statuses", n)
	}
	svc := order.NewService(orderRepo)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	serverMetrics := metrics.NewServerMetrics(reg, "http")
	orderMetrics := metrics.NewOrderMetrics(reg)
	metrics.RegisterFeed(reg, "orders", svc.Feed())

	carts, err := newCartStore(ctx, cfg)
	if err != nil {
		log.Fatalf("cart store: %v", err)
	}

	startEvents(ctx, cfg, pool, svc)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := order.RegisterValidators(v); err != nil {
			log.Fatalf("validators: %v", err)
		}
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), httpx.Metrics(serverMetrics), cors.New(corsConfig(cfg.CORSOrigins)))
	r.GET("/metrics", gin.WrapH(metrics.Handler(reg)))
	registerRoutes(r, deps{
		orders:       svc,
		products:     product.NewPGRepo(pool),
		carts:        carts,
		payments:     payment.NewClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey),
		metrics:      orderMetrics,
		currency:     cfg.Currency,
		adminKeyHash: cfg.AdminKeyHash,
		jwtSecret:    cfg.JWTSecret,
		ping:         ping,
	})

	grpcSrv, err := serveHealth(ctx, cfg.GRPCAddr, ping)
	if err != nil {
		log.Fatalf("grpc listen: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("storefront-service listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	grpcSrv.GracefulStop()
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", cartSessionHeader, httpx.AdminKeyHeader, "X-Request-ID"},
		ExposeHeaders: []string{cartSessionHeader, "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func newCartStore(ctx context.Context, cfg config.Config) (cart.Store, error) {
	switch cfg.CartStore {
	case "dynamodb":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, err
		}
		log.Printf("[cart] dynamodb table=%s region=%s", cfg.DynamoCartTable, cfg.AWSRegion)
		return cart.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.DynamoCartTable, cfg.CartTTL), nil
	default:
		store := cart.NewMemoryStore(cfg.CartTTL)
		go store.RunSweeper(ctx, 10*time.Minute)
		return store, nil
	}
}

// startEvents ships the outbox to kafka and refreshes live feeds when any
// instance reports an order change. Without brokers events stay in the outbox.
func startEvents(ctx context.Context, cfg config.Config, pool *pgxpool.Pool, svc *order.Service) {
	client := events.NewClient(cfg.KafkaBrokers)
	if !client.Enabled() {
		log.Printf("[events] KAFKA_BROKERS empty, outbox relay disabled")
		return
	}
	pub := client.NewPublisher()
	relay := &events.Relay{Pool: pool, Publisher: pub, Interval: cfg.OutboxInterval}
	go func() {
		relay.Run(ctx)
		_ = pub.Close()
	}()

	reader := client.NewReader(cfg.OrderEventsTopic, cfg.KafkaGroupID)
	go events.Consume(ctx, reader, func(ctx context.Context, evt events.Event) {
		if err := svc.Refresh(ctx); err != nil {
			log.Printf("[events] refresh after %s %s: %v", evt.Type, evt.OrderCode, err)
		}
	})
	log.Printf("[events] relay to %v, consuming %s as %s", client.Brokers, cfg.OrderEventsTopic, cfg.KafkaGroupID)
}
