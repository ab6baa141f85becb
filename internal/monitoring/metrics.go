package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Operational metrics
var (
	purchasesCommitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bakehouse_purchases_committed_total",
			Help: "Number of purchases committed",
		},
	)

	productionsCommitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bakehouse_productions_committed_total",
			Help: "Number of production runs committed",
		},
	)

	productionShortages = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bakehouse_production_shortage_aborts_total",
			Help: "Number of production attempts aborted by stock shortages",
		},
	)

	conversionFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bakehouse_conversion_fallbacks_total",
			Help: "Number of unit conversions that fell back to the unconverted quantity",
		},
	)

	lowStockItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bakehouse_low_stock_items",
			Help: "Number of items at or below their reorder threshold",
		},
	)
)

func init() {
	prometheus.MustRegister(
		purchasesCommitted,
		productionsCommitted,
		productionShortages,
		conversionFallbacks,
		lowStockItems,
	)
}

// RecordPurchase counts a committed purchase
func RecordPurchase() {
	purchasesCommitted.Inc()
}

// RecordProduction counts a committed production run
func RecordProduction() {
	productionsCommitted.Inc()
}

// RecordShortageAbort counts a production attempt aborted by shortages
func RecordShortageAbort() {
	productionShortages.Inc()
}

// RecordConversionFallback counts a fail-open unit conversion
func RecordConversionFallback() {
	conversionFallbacks.Inc()
}

// SetLowStockCount records the current number of items needing reorder
func SetLowStockCount(n int) {
	lowStockItems.Set(float64(n))
}
