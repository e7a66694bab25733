package pricing

import (
	"strconv"
	"sync"
)

// Selection is the state of the order form at one moment.
type Selection struct {
	TeaKey   string      `json:"tea_type"`
	Quantity RawQuantity `json:"quantity"`
	AddOns   []string    `json:"addons"`
	Delivery string      `json:"delivery"`
}

// Breakdown is the price of a Selection. It is rebuilt from scratch on every
// calculation and never stored.
type Breakdown struct {
	TeaKey         string         `json:"tea_type,omitempty"`
	TeaLabel       string         `json:"tea_label"`
	TeaSelected    bool           `json:"tea_selected"`
	UnitPrice      int            `json:"unit_price"`
	Quantity       int            `json:"quantity"`
	AddOns         []Item         `json:"addons"`
	AddOnsSubtotal int            `json:"addons_subtotal"`
	Delivery       DeliveryMethod `json:"delivery"`
	DeliveryCharge int            `json:"delivery_charge"`
	Total          int            `json:"total"`
}

// Calculator prices selections against a catalog and hands each result to
// its subscribers.
type Calculator struct {
	catalog          *Catalog
	expressSurcharge int

	mu          sync.RWMutex
	subscribers []func(Breakdown)
}

// NewCalculator creates a calculator. A negative surcharge is treated as 0.
func NewCalculator(catalog *Catalog, expressSurcharge int) *Calculator {
	if expressSurcharge < 0 {
		expressSurcharge = 0
	}
	return &Calculator{
		catalog:          catalog,
		expressSurcharge: expressSurcharge,
	}
}

// Catalog returns the menu the calculator prices against.
func (c *Calculator) Catalog() *Catalog {
	return c.catalog
}

// Subscribe registers fn to receive every breakdown produced by Recalculate.
func (c *Calculator) Subscribe(fn func(Breakdown)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Recalculate prices sel and notifies subscribers in registration order.
func (c *Calculator) Recalculate(sel Selection) Breakdown {
	b := c.Calculate(sel)

	c.mu.RLock()
	subs := c.subscribers
	c.mu.RUnlock()

	for _, fn := range subs {
		fn(b)
	}
	return b
}

// Calculate prices sel:
//
//	total = base*quantity + addons*quantity + delivery surcharge
//
// The delivery surcharge is applied once regardless of quantity.
func (c *Calculator) Calculate(sel Selection) Breakdown {
	tea, selected := c.catalog.ResolveTea(sel.TeaKey)
	quantity := sel.Quantity.Resolve()
	addOns := c.catalog.ResolveAddOns(sel.AddOns)
	delivery := ResolveDelivery(sel.Delivery)

	addOnsUnit := 0
	for _, a := range addOns {
		addOnsUnit += a.Price
	}

	deliveryCharge := 0
	if delivery == DeliveryExpress {
		deliveryCharge = c.expressSurcharge
	}

	b := Breakdown{
		TeaLabel:       tea.Label,
		TeaSelected:    selected,
		UnitPrice:      tea.Price,
		Quantity:       quantity,
		AddOns:         addOns,
		AddOnsSubtotal: addOnsUnit * quantity,
		Delivery:       delivery,
		DeliveryCharge: deliveryCharge,
	}
	if selected {
		b.TeaKey = tea.Key
	}
	b.Total = b.UnitPrice*quantity + b.AddOnsSubtotal + deliveryCharge
	return b
}

// Display is a Breakdown rendered for the order summary panel.
type Display struct {
	Tea      string `json:"tea"`
	Quantity string `json:"quantity"`
	AddOns   string `json:"addons"`
	Delivery string `json:"delivery"`
	Total    string `json:"total"`
}

// Display renders b the way the order summary shows it.
func (b Breakdown) Display() Display {
	delivery := "Free"
	if b.DeliveryCharge != 0 {
		delivery = FormatRupees(b.DeliveryCharge)
	}
	return Display{
		Tea:      b.TeaLabel,
		Quantity: QuantityLabel(b.Quantity),
		AddOns:   FormatRupees(b.AddOnsSubtotal),
		Delivery: delivery,
		Total:    FormatRupees(b.Total),
	}
}

// FormatRupees renders a whole-rupee amount, e.g. "₹140".
func FormatRupees(amount int) string {
	return "₹" + strconv.Itoa(amount)
}

// QuantityLabel renders a cup count, e.g. "1 cup" or "2 cups".
func QuantityLabel(quantity int) string {
	if quantity == 1 {
		return "1 cup"
	}
	return strconv.Itoa(quantity) + " cups"
}
