package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed",
	})

	OrdersPaidTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_paid_total",
		Help: "Total number of orders marked paid by payment verification",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of failed order placements",
	}, []string{"reason"})

	PaymentIntentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_intents_total",
		Help: "Total number of payment intents requested from the gateway",
	})

	PaymentIntentFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_intent_failed_total",
		Help: "Total number of failed payment intent requests",
	})

	PaymentVerifyFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_verify_failed_total",
		Help: "Total number of rejected payment verifications",
	}, []string{"reason"})

	SMSSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sms_sent_total",
		Help: "Total number of SMS notifications sent",
	})

	SMSFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sms_failed_total",
		Help: "Total number of SMS notifications that failed to send",
	})

	CartItemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_added_total",
		Help: "Total number of items added to carts",
	})

	ProductCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_cache_hits_total",
		Help: "Total number of product reads served from Redis",
	})

	ProductCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_cache_misses_total",
		Help: "Total number of product reads that fell through to the database",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
