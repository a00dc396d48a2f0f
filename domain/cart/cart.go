// Package cart defines the shopping cart.
package cart

// Item is one cart line.
type Item struct {
	ProductID    int64
	Title        string
	PreviewImage string
	Count        int
	Price        int // total price of one unit
}

// Cart is the current user's cart.
type Cart struct {
	Items     []Item
	TotalCost int
	BaseCost  int
}

// Count returns the number of units in the cart.
func (c *Cart) Count() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Count
	}
	return n
}

// ProductIDs returns the distinct products in the cart in item order.
func (c *Cart) ProductIDs() []int64 {
	if c == nil {
		return nil
	}
	ids := make([]int64, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
