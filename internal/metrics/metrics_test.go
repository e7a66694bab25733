package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/chai-gali/chai-gali-orders-service/internal/pricing"
)

func TestObserveBreakdown(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveBreakdown(pricing.Breakdown{Delivery: pricing.DeliveryExpress, TeaSelected: true})
	m.ObserveBreakdown(pricing.Breakdown{Delivery: pricing.DeliveryExpress, TeaSelected: true})
	m.ObserveBreakdown(pricing.Breakdown{Delivery: pricing.DeliveryStandard})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Quotes.WithLabelValues("express", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Quotes.WithLabelValues("standard", "false")))
}

func TestOrderAndContactOutcomes(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.OrderAccepted(140)
	m.OrderRejected()
	m.ContactOutcome(true)
	m.ContactOutcome(false)
	m.ContactOutcome(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Orders.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Orders.WithLabelValues("rejected")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Contacts.WithLabelValues("rejected")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.OrderTotals))
}
