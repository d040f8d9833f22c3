package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewServerMetrics(reg prometheus.Registerer, service string) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})

	reg.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// FeedStats is implemented by realtime.Hub.
type FeedStats interface {
	Topics() int
	Subscribers() int
}

// RegisterFeed exposes live query and subscriber gauges for one hub.
func RegisterFeed(reg prometheus.Registerer, name string, feed FeedStats) {
	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "realtime",
			Name:        "topics",
			Help:        "Live queries currently shared by subscribers.",
			ConstLabels: prometheus.Labels{"feed": name},
		}, func() float64 { return float64(feed.Topics()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "realtime",
			Name:        "subscribers",
			Help:        "Acquired realtime subscriptions.",
			ConstLabels: prometheus.Labels{"feed": name},
		}, func() float64 { return float64(feed.Subscribers()) }),
	)
}

type OrderMetrics struct {
	Created     prometheus.Counter
	Replayed    prometheus.Counter
	Transitions *prometheus.CounterVec
	Checkout    *prometheus.CounterVec
}

func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	m := &OrderMetrics{
		Created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "orders", Name: "created_total",
			Help: "Orders created after a verified payment.",
		}),
		Replayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "orders", Name: "replayed_total",
			Help: "Checkout submissions answered with an existing order for the same payment reference.",
		}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "orders", Name: "status_transitions_total",
			Help: "Status changes applied, by target status.",
		}, []string{"to"}),
		Checkout: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "checkout", Name: "results_total",
			Help: "Checkout outcomes.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.Created, m.Replayed, m.Transitions, m.Checkout)
	return m
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
