package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/chai-gali/chai-gali-orders-service/internal/pricing"
)

// Metrics groups the service's Prometheus collectors.
type Metrics struct {
	Quotes      *prometheus.CounterVec
	Orders      *prometheus.CounterVec
	Contacts    *prometheus.CounterVec
	OrderTotals prometheus.Histogram
	CartAdds    prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chai_gali",
			Name:      "price_quotes_total",
			Help:      "Price breakdowns computed, by delivery method and whether a tea was selected.",
		}, []string{"delivery", "tea_selected"}),
		Orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chai_gali",
			Name:      "orders_total",
			Help:      "Order submissions by outcome.",
		}, []string{"outcome"}),
		Contacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chai_gali",
			Name:      "contact_messages_total",
			Help:      "Contact form submissions by outcome.",
		}, []string{"outcome"}),
		OrderTotals: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chai_gali",
			Name:      "order_total_rupees",
			Help:      "Grand total of accepted orders in rupees.",
			Buckets:   []float64{25, 50, 100, 200, 500, 1000, 2500},
		}),
		CartAdds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chai_gali",
			Name:      "cart_additions_total",
			Help:      "Items added to saved carts.",
		}),
	}

	reg.MustRegister(m.Quotes, m.Orders, m.Contacts, m.OrderTotals, m.CartAdds)
	return m
}

// ObserveBreakdown is a pricing subscriber counting every computed breakdown.
func (m *Metrics) ObserveBreakdown(b pricing.Breakdown) {
	selected := "false"
	if b.TeaSelected {
		selected = "true"
	}
	m.Quotes.WithLabelValues(string(b.Delivery), selected).Inc()
}

// OrderAccepted records a stored order.
func (m *Metrics) OrderAccepted(total int) {
	m.Orders.WithLabelValues("accepted").Inc()
	m.OrderTotals.Observe(float64(total))
}

// OrderRejected records an order refused by validation.
func (m *Metrics) OrderRejected() {
	m.Orders.WithLabelValues("rejected").Inc()
}

// ContactOutcome records a contact submission.
func (m *Metrics) ContactOutcome(accepted bool) {
	if accepted {
		m.Contacts.WithLabelValues("accepted").Inc()
		return
	}
	m.Contacts.WithLabelValues("rejected").Inc()
}
