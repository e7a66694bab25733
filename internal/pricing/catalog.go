package pricing

import (
	"sort"
	"sync"
)

// Item is a priced menu entry: a tea or an add-on.
type Item struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Price int    `json:"price"`
}

// Catalog holds the teas and add-ons the shop currently sells. Prices can be
// changed at runtime by menu update events.
type Catalog struct {
	mu     sync.RWMutex
	teas   map[string]Item
	addOns map[string]Item
}

// NewCatalog builds a catalog from the given teas and add-ons. Negative
// prices are stored as 0.
func NewCatalog(teas, addOns []Item) *Catalog {
	c := &Catalog{
		teas:   make(map[string]Item, len(teas)),
		addOns: make(map[string]Item, len(addOns)),
	}
	for _, t := range teas {
		c.teas[t.Key] = clampItem(t)
	}
	for _, a := range addOns {
		c.addOns[a.Key] = clampItem(a)
	}
	return c
}

// DefaultCatalog is the menu served on the shop's order page.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		[]Item{
			{Key: "masala-chai", Label: "Masala Chai", Price: 30},
			{Key: "adrak-chai", Label: "Adrak Chai", Price: 25},
			{Key: "elaichi-chai", Label: "Elaichi Chai", Price: 30},
			{Key: "kulhad-chai", Label: "Kulhad Chai", Price: 40},
			{Key: "kashmiri-kahwa", Label: "Kashmiri Kahwa", Price: 50},
			{Key: "green-tea", Label: "Green Tea", Price: 35},
			{Key: "lemon-tea", Label: "Lemon Tea", Price: 25},
			{Key: "iced-tea", Label: "Iced Tea", Price: 45},
		},
		[]Item{
			{Key: "extra-sugar", Label: "Extra Sugar", Price: 0},
			{Key: "honey", Label: "Honey", Price: 10},
			{Key: "extra-ginger", Label: "Extra Ginger", Price: 5},
			{Key: "biscuits", Label: "Biscuits", Price: 15},
			{Key: "samosa", Label: "Samosa", Price: 20},
		},
	)
}

// Tea looks up a tea by key.
func (c *Catalog) Tea(key string) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.teas[key]
	return t, ok
}

// AddOn looks up an add-on by key.
func (c *Catalog) AddOn(key string) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.addOns[key]
	return a, ok
}

// Teas returns every tea sorted by key.
func (c *Catalog) Teas() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedItems(c.teas)
}

// AddOns returns every add-on sorted by key.
func (c *Catalog) AddOns() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedItems(c.addOns)
}

// UpsertTea adds a tea or replaces its label and price.
func (c *Catalog) UpsertTea(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teas[item.Key] = mergeItem(c.teas[item.Key], item)
}

// UpsertAddOn adds an add-on or replaces its label and price.
func (c *Catalog) UpsertAddOn(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addOns[item.Key] = mergeItem(c.addOns[item.Key], item)
}

// RemoveTea takes a tea off the menu.
func (c *Catalog) RemoveTea(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.teas, key)
}

// RemoveAddOn takes an add-on off the menu.
func (c *Catalog) RemoveAddOn(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.addOns, key)
}

// mergeItem keeps the existing label when the update carries none.
func mergeItem(existing, update Item) Item {
	if update.Label == "" {
		update.Label = existing.Label
	}
	if update.Label == "" {
		update.Label = update.Key
	}
	return clampItem(update)
}

func clampItem(item Item) Item {
	switch {
	case item.Price < 0:
		item.Price = 0
	case item.Price > MaxPrice:
		item.Price = MaxPrice
	}
	return item
}

func sortedItems(m map[string]Item) []Item {
	out := make([]Item, 0, len(m))
	for _, it := range m {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
