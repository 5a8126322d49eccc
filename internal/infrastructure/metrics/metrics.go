package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics owns a private registry so tests can build as many as they need.
type Metrics struct {
	Registry *prometheus.Registry

	ordersTotal      *prometheus.CounterVec
	transitionsTotal *prometheus.CounterVec
	stockAdjustments *prometheus.CounterVec
	lowStockTotal    prometheus.Counter
	txDuration       *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		ordersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sellerhub_orders_total",
				Help: "Order creation attempts by outcome and error kind.",
			},
			[]string{"outcome", "kind"},
		),
		transitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sellerhub_order_transitions_total",
				Help: "Order status transitions by stock effect and outcome.",
			},
			[]string{"effect", "outcome"},
		),
		stockAdjustments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sellerhub_stock_adjustments_total",
				Help: "Committed stock movements by direction.",
			},
			[]string{"direction"},
		),
		lowStockTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sellerhub_low_stock_products_total",
				Help: "Products left at or below the tenant low-stock threshold after a sale.",
			},
		),
		txDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sellerhub_transaction_duration_seconds",
				Help:    "Duration of write transactions by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordOrder counts a creation attempt. kind is empty on success.
func (m *Metrics) RecordOrder(kind string) {
	if kind == "" {
		m.ordersTotal.WithLabelValues("success", "").Inc()
		return
	}
	m.ordersTotal.WithLabelValues("failure", kind).Inc()
}

func (m *Metrics) RecordTransition(effect string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.transitionsTotal.WithLabelValues(effect, outcome).Inc()
}

// RecordStockAdjustments counts committed order lines whose stock moved out
// (debit) or back in (restock).
func (m *Metrics) RecordStockAdjustments(direction string, lines int) {
	m.stockAdjustments.WithLabelValues(direction).Add(float64(lines))
}

func (m *Metrics) RecordLowStock(products int) {
	m.lowStockTotal.Add(float64(products))
}

func (m *Metrics) ObserveTx(operation string, d time.Duration) {
	m.txDuration.WithLabelValues(operation).Observe(d.Seconds())
}
