package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

var (
	OrdersRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_recorded_total",
		Help:      "Orders persisted by payment method.",
	}, []string{"payment_method"})

	CheckoutsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_failed_total",
		Help:      "Checkouts that ended in the failure state.",
	})

	Reconciliations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconciliations_total",
		Help:      "Local to remote merges by kind and outcome.",
	}, []string{"kind", "outcome"})

	CatalogCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_lookups_total",
		Help:      "Product cache lookups by result.",
	}, []string{"result"})

	OrderNotices = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_notices_total",
		Help:      "Order created events handled by the notification service, by outcome.",
	}, []string{"outcome"})
)
