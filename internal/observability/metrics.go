package observability

import "github.com/prometheus/client_golang/prometheus"

//nolint:gochecknoglobals // Package-level prometheus collectors are a standard pattern
var (
	// CatalogRefreshTotal counts catalog rebuilds by outcome.
	CatalogRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricebook",
			Subsystem: "catalog",
			Name:      "refresh_total",
			Help:      "Total catalog rebuilds by result (live or fallback)",
		},
		[]string{"result"},
	)

	// PricingRefreshTotal counts pricing table refreshes by source and outcome.
	PricingRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricebook",
			Subsystem: "pricing",
			Name:      "refresh_total",
			Help:      "Total pricing refresh attempts by source and result",
		},
		[]string{"source", "result"},
	)
)

func init() {
	prometheus.MustRegister(CatalogRefreshTotal, PricingRefreshTotal)
}
