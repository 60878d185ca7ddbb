package cart

import (
	"sort"
	"strconv"
)

// Cart maps product id to quantity in kilograms. It belongs to one session.
type Cart map[string]int

// LineItem is a priced snapshot of one cart entry.
type LineItem struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"nama"`
	PricePerKg int    `json:"harga_per_kg"`
	Qty        int    `json:"qty"`
	Subtotal   int    `json:"subtotal"`
	ImagePath  string `json:"image_path,omitempty"`
}

// ParseQuantity reads a quantity form field. Anything unparsable or below
// one becomes 1.
func ParseQuantity(raw string) int {
	qty, err := strconv.Atoi(raw)
	if err != nil || qty < 1 {
		return 1
	}
	return qty
}

// Add accumulates qty onto the existing quantity for productID.
func (c Cart) Add(productID string, qty int) {
	if qty < 1 {
		qty = 1
	}
	c[productID] += qty
}

func (c Cart) Remove(productID string) {
	delete(c, productID)
}

// Count is the total quantity across all entries.
func (c Cart) Count() int {
	n := 0
	for _, qty := range c {
		n += qty
	}
	return n
}

func (c Cart) Clear() {
	for id := range c {
		delete(c, id)
	}
}

// ProductIDs returns the cart keys in ascending order.
func (c Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
