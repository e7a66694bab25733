package pricing

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return NewCatalog(
		[]Item{
			{Key: "masala", Label: "Masala Chai", Price: 50},
			{Key: "ginger", Label: "Ginger Chai", Price: 30},
		},
		[]Item{
			{Key: "honey", Label: "Honey", Price: 10},
			{Key: "biscuits", Label: "Biscuits", Price: 15},
		},
	)
}

func TestCalculate_ExpressOrder(t *testing.T) {
	calc := NewCalculator(testCatalog(), 20)

	b := calc.Calculate(Selection{
		TeaKey:   "masala",
		Quantity: "2",
		AddOns:   []string{"honey"},
		Delivery: "express",
	})

	assert.Equal(t, 50, b.UnitPrice)
	assert.Equal(t, 2, b.Quantity)
	assert.Equal(t, 20, b.AddOnsSubtotal)
	assert.Equal(t, 20, b.DeliveryCharge)
	assert.Equal(t, 140, b.Total)
	assert.True(t, b.TeaSelected)

	d := b.Display()
	assert.Equal(t, Display{
		Tea:      "Masala Chai",
		Quantity: "2 cups",
		AddOns:   "₹20",
		Delivery: "₹20",
		Total:    "₹140",
	}, d)
}

func TestCalculate_NothingSelected(t *testing.T) {
	calc := NewCalculator(testCatalog(), 20)

	b := calc.Calculate(Selection{Delivery: "standard"})

	assert.False(t, b.TeaSelected)
	assert.Equal(t, PlaceholderTeaLabel, b.TeaLabel)
	assert.Equal(t, 1, b.Quantity)
	assert.Equal(t, 0, b.Total)

	d := b.Display()
	assert.Equal(t, "Select a tea", d.Tea)
	assert.Equal(t, "1 cup", d.Quantity)
	assert.Equal(t, "₹0", d.AddOns)
	assert.Equal(t, "Free", d.Delivery)
	assert.Equal(t, "₹0", d.Total)
}

func TestCalculate_SurchargeDoesNotScaleWithQuantity(t *testing.T) {
	calc := NewCalculator(testCatalog(), 20)

	for q := 1; q <= 25; q++ {
		sel := Selection{
			TeaKey:   "ginger",
			Quantity: RawQuantity(strconv.Itoa(q)),
			AddOns:   []string{"honey", "biscuits"},
			Delivery: "express",
		}
		b := calc.Calculate(sel)
		assert.Equal(t, (30+10+15)*q+20, b.Total, "quantity %d", q)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	calc := NewCalculator(testCatalog(), 20)
	sel := Selection{TeaKey: "masala", Quantity: "3", AddOns: []string{"biscuits"}, Delivery: "express"}

	assert.Equal(t, calc.Calculate(sel), calc.Calculate(sel))
}

func TestCalculate_UnknownInputsDegrade(t *testing.T) {
	calc := NewCalculator(testCatalog(), 20)

	b := calc.Calculate(Selection{
		TeaKey:   "earl-grey",
		Quantity: "lots",
		AddOns:   []string{"caviar", "honey", "honey"},
		Delivery: "drone",
	})

	assert.False(t, b.TeaSelected)
	assert.Empty(t, b.TeaKey)
	assert.Equal(t, 0, b.UnitPrice)
	assert.Equal(t, 1, b.Quantity)
	require.Len(t, b.AddOns, 1)
	assert.Equal(t, "honey", b.AddOns[0].Key)
	assert.Equal(t, DeliveryStandard, b.Delivery)
	assert.Equal(t, 10, b.Total)
}

func TestNewCalculator_NegativeSurcharge(t *testing.T) {
	calc := NewCalculator(testCatalog(), -5)

	b := calc.Calculate(Selection{TeaKey: "masala", Delivery: "express"})
	assert.Equal(t, 0, b.DeliveryCharge)
	assert.Equal(t, "Free", b.Display().Delivery)
}

func TestRecalculate_NotifiesSubscribers(t *testing.T) {
	calc := NewCalculator(testCatalog(), 20)

	var order []string
	var got Breakdown
	calc.Subscribe(func(b Breakdown) {
		order = append(order, "first")
		got = b
	})
	calc.Subscribe(func(Breakdown) { order = append(order, "second") })
	calc.Subscribe(nil)

	b := calc.Recalculate(Selection{TeaKey: "masala", Quantity: "2"})

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, b, got)
	assert.Equal(t, 100, got.Total)
}

func TestResolveQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"1", 1},
		{"2", 2},
		{"  7", 7},
		{"+4", 4},
		{"3 cups", 3},
		{"2.9", 2},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"-", 1},
		{"10000", 10000},
		{"10001", MaxQuantity},
		{"99999999999999999999999", MaxQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveQuantity(tt.raw))
		})
	}
}

func TestResolveDelivery(t *testing.T) {
	assert.Equal(t, DeliveryExpress, ResolveDelivery("express"))
	assert.Equal(t, DeliveryExpress, ResolveDelivery(" EXPRESS "))
	assert.Equal(t, DeliveryStandard, ResolveDelivery("standard"))
	assert.Equal(t, DeliveryStandard, ResolveDelivery(""))
	assert.Equal(t, DeliveryStandard, ResolveDelivery("overnight"))
}

func TestRawQuantity_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{`{"quantity": 3}`, 3},
		{`{"quantity": "4"}`, 4},
		{`{"quantity": null}`, 1},
		{`{}`, 1},
		{`{"quantity": 2.5}`, 2},
		{`{"quantity": "two"}`, 1},
		{`{"quantity": true}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var sel Selection
			require.NoError(t, json.Unmarshal([]byte(tt.body), &sel))
			assert.Equal(t, tt.want, sel.Quantity.Resolve())
		})
	}
}

func TestQuantityLabel(t *testing.T) {
	assert.Equal(t, "1 cup", QuantityLabel(1))
	assert.Equal(t, "2 cups", QuantityLabel(2))
	assert.Equal(t, "12 cups", QuantityLabel(12))
}

func TestFormatRupees(t *testing.T) {
	assert.Equal(t, "₹0", FormatRupees(0))
	assert.Equal(t, "₹1250", FormatRupees(1250))
}
