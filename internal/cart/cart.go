package cart

import "github.com/Yana3030-web/stroymaster-website/internal/model"

// Item is a product in the cart together with its quantity.
// Quantity is always at least 1; a cart holds at most one item per product.
type Item struct {
	Product  model.Product `json:"product"`
	Quantity int           `json:"quantity"`
}

// Cart is an ordered sequence of items. Insertion order is preserved:
// re-adding a product bumps its quantity without moving it.
//
// Cart itself is not safe for concurrent use; the stores serialise access.
type Cart struct {
	Items []Item `json:"items"`
}

// Add puts one unit of the product into the cart. If the product is already
// present its quantity is incremented and its position kept; otherwise the
// product is appended with quantity 1.
func (c *Cart) Add(product model.Product) {
	for i := range c.Items {
		if c.Items[i].Product.ID == product.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, Item{Product: product, Quantity: 1})
}

// UpdateQuantity sets the quantity of the item with the given product ID
// exactly. A quantity of zero or less removes the item. Unknown IDs are a
// no-op.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the item with the given product ID; no-op when absent.
func (c *Cart) Remove(productID int64) {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems is the sum of quantities across all items, recomputed on every
// call.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity across all items.
// Price-on-request items (price 0) contribute nothing.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, item := range c.Items {
		if item.Product.Price > 0 {
			total += item.Product.Price * float64(item.Quantity)
		}
	}
	return total
}

// OrderItems renders the cart as order line items for the submission flow.
func (c *Cart) OrderItems() []model.OrderItem {
	items := make([]model.OrderItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = model.OrderItem{
			ID:       item.Product.ID,
			Name:     item.Product.Name,
			Price:    item.Product.Price,
			Quantity: item.Quantity,
			Image:    item.Product.Image,
		}
	}
	return items
}
