package client

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/ray-remotestate/tableside/models"
)

var ErrEmptyCart = errors.New("cart is empty")

// CartItem is one storefront cart row. Rows are keyed by menu item plus
// special option, so the same dish with different options occupies two rows.
type CartItem struct {
	MenuItemID    uuid.UUID
	Name          string
	Price         float64
	Quantity      int
	SpecialOption string
}

// Cart holds per-session checkout state for one table.
type Cart struct {
	mu           sync.Mutex
	restaurantID uuid.UUID
	tableNumber  string
	items        []CartItem
}

func NewCart(restaurantID uuid.UUID, tableNumber string) *Cart {
	return &Cart{restaurantID: restaurantID, tableNumber: tableNumber}
}

// Add merges into an existing row when the same item with the same special
// option is already present, otherwise appends a new row with quantity 1.
func (c *Cart) Add(item models.MenuItem, specialOption string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].MenuItemID == item.ID && c.items[i].SpecialOption == specialOption {
			c.items[i].Quantity++
			return
		}
	}

	c.items = append(c.items, CartItem{
		MenuItemID:    item.ID,
		Name:          item.Name,
		Price:         item.Price,
		Quantity:      1,
		SpecialOption: specialOption,
	})
}

func (c *Cart) Remove(menuItemID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, item := range c.items {
		if item.MenuItemID != menuItemID {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// SetQuantity ignores non-positive quantities; removal is explicit.
func (c *Cart) SetQuantity(menuItemID uuid.UUID, quantity int) {
	if quantity < 1 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].MenuItemID == menuItemID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Checkout submits the cart as an order and clears it on success. Diners
// without a scanned table fall back to table "0", matching the storefront.
func (c *Cart) Checkout(ctx context.Context, api *Client, payment models.PaymentMethod) (*models.Order, error) {
	c.mu.Lock()
	if len(c.items) == 0 {
		c.mu.Unlock()
		return nil, ErrEmptyCart
	}

	table := c.tableNumber
	if table == "" {
		table = "0"
	}

	req := &CreateOrderRequest{
		RestaurantID:  c.restaurantID,
		Items:         make([]OrderItemRequest, len(c.items)),
		PaymentMethod: payment,
		TableNumber:   table,
	}
	for i, item := range c.items {
		req.Items[i] = OrderItemRequest{
			MenuItem:      item.MenuItemID,
			Name:          item.Name,
			Quantity:      item.Quantity,
			Price:         item.Price,
			SpecialOption: item.SpecialOption,
		}
		req.TotalAmount += item.Price * float64(item.Quantity)
	}
	c.mu.Unlock()

	order, err := api.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	c.Clear()
	return order, nil
}
