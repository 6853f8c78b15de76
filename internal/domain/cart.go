package domain

// LineItem is one product entry in the cart, carrying its own quantity.
// ID is the sole identity of a line item; the display fields (Name, Artist,
// Image) and Price are pass-through values supplied by the catalog and are
// not interpreted here.
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Artist   string  `json:"artist"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// Cart is the shopper's cart aggregate. Items are unique by ID and keep the
// order in which distinct products were first added. Every stored item has
// quantity >= 1; an item is removed rather than kept at zero.
type Cart struct {
	Items []LineItem `json:"items"`
}

// AddItem merges the given item into the cart. If an item with the same ID is
// already present its quantity grows by item.Quantity and its other fields
// keep their first-seen values; otherwise the item is appended. Re-adding an
// existing ID never changes its position.
func (c *Cart) AddItem(item LineItem) {
	if i := c.FindIndex(item.ID); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// RemoveItem deletes the item with the given ID. Unknown IDs are a no-op.
func (c *Cart) RemoveItem(id string) {
	if i := c.FindIndex(id); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// UpdateQuantity sets the matching item's quantity, clamping requests below 1
// up to 1. Removal is an explicit operation, never a side effect of a low
// quantity. Unknown IDs are a no-op.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if i := c.FindIndex(id); i >= 0 {
		c.Items[i].Quantity = max(1, quantity)
	}
}

// Clear resets the cart to empty.
func (c *Cart) Clear() {
	c.Items = nil
}

// TotalPrice returns the sum of price * quantity over all items.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// TotalItems returns the total unit count, not the distinct-product count.
func (c *Cart) TotalItems() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindIndex returns the index of the item with the given ID, or -1.
func (c *Cart) FindIndex(id string) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the cart.
func (c *Cart) Clone() Cart {
	if c.Items == nil {
		return Cart{}
	}
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}
