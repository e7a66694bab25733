package pricing

import (
	"strconv"
	"strings"
)

// Default resolution policy. Invalid or missing input never fails a price
// calculation; it degrades to these values instead.
const (
	DefaultQuantity     = 1
	MaxQuantity         = 10000
	MaxPrice            = 1000000
	PlaceholderTeaLabel = "Select a tea"
)

// DeliveryMethod is the delivery option picked on the order form.
type DeliveryMethod string

const (
	DeliveryStandard DeliveryMethod = "standard"
	DeliveryExpress  DeliveryMethod = "express"
)

// DefaultExpressSurcharge is the flat fee for express delivery in rupees.
const DefaultExpressSurcharge = 20

// ResolveQuantity reads the leading integer of raw, the way the order page's
// quantity box is read. Anything that does not yield a positive integer
// resolves to DefaultQuantity; larger values are capped at MaxQuantity.
func ResolveQuantity(raw string) int {
	s := strings.TrimLeft(raw, " \t\n\r\f\v")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return DefaultQuantity
	}

	if s[:digitsStart] == "-" {
		return DefaultQuantity
	}
	n, err := strconv.Atoi(s[digitsStart:end])
	switch {
	case err != nil:
		// only a range error is possible here
		return MaxQuantity
	case n <= 0:
		return DefaultQuantity
	case n > MaxQuantity:
		return MaxQuantity
	}
	return n
}

// ResolveDelivery maps a submitted delivery value onto a known method.
func ResolveDelivery(value string) DeliveryMethod {
	if DeliveryMethod(strings.ToLower(strings.TrimSpace(value))) == DeliveryExpress {
		return DeliveryExpress
	}
	return DeliveryStandard
}

// ResolveTea finds the selected tea. ok is false when nothing usable is
// selected, in which case the returned item carries the placeholder label
// and a zero price.
func (c *Catalog) ResolveTea(key string) (item Item, ok bool) {
	key = strings.TrimSpace(key)
	if key != "" {
		if t, found := c.Tea(key); found {
			return t, true
		}
	}
	return Item{Label: PlaceholderTeaLabel}, false
}

// ResolveAddOns returns the known add-ons among keys, each at most once, in
// the order they were first given. Unknown keys are dropped.
func (c *Catalog) ResolveAddOns(keys []string) []Item {
	seen := make(map[string]struct{}, len(keys))
	out := make([]Item, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if a, found := c.AddOn(k); found {
			out = append(out, a)
		}
	}
	return out
}

// RawQuantity is the quantity exactly as submitted. It accepts a JSON
// string, number or null so that resolution happens in ResolveQuantity and
// never in request decoding.
type RawQuantity string

func (q *RawQuantity) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*q = ""
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		*q = RawQuantity(unquoted)
		return nil
	}
	*q = RawQuantity(s)
	return nil
}

// Resolve applies ResolveQuantity.
func (q RawQuantity) Resolve() int {
	return ResolveQuantity(string(q))
}
