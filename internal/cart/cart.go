// Package cart holds the visitor cart carried inside a session.
package cart

import "github.com/google/uuid"

// Item is one line in a cart. The fields mirror the hidden inputs posted by
// the add-to-cart form, so a line can be rendered without a catalog lookup.
type Item struct {
	BookID   uuid.UUID `json:"book_id"`
	Title    string    `json:"title"`
	CoverURL string    `json:"cover_url"`
	Price    int       `json:"price"`
	Quantity int       `json:"quantity"`
}

// Cart holds the items a visitor has picked up.
type Cart struct {
	Items []Item `json:"items"`
}

// Add merges an item into the cart. Adding a record that is already present
// raises its quantity instead of appending a second line.
func (c *Cart) Add(item Item) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].BookID == item.BookID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// Remove drops the line for the given record. Removing an absent record is
// a no-op.
func (c *Cart) Remove(bookID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Count returns the total number of copies across all lines.
func (c *Cart) Count() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal returns the cart total in whole currency units.
func (c *Cart) Subtotal() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, item := range c.Items {
		total += item.Price * item.Quantity
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
