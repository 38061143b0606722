package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
	StatusCompleted OrderStatus = "completed"
)

func (s OrderStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0 && s.IsValid()
}

var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusReady, StatusDelivered, StatusCompleted, StatusCancelled},
	StatusPreparing: {StatusReady, StatusDelivered, StatusCompleted},
	StatusReady:     {StatusDelivered, StatusCompleted},
	StatusDelivered: {StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// ValidStatusTransition is the single authority on order status changes;
// nothing outside the server re-checks these rules.
func ValidStatusTransition(from, to OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanCancel permits cancellation only before the kitchen starts working.
func (s OrderStatus) CanCancel() bool {
	return s == StatusPending || s == StatusConfirmed
}

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentQPay       PaymentMethod = "qpay"
)

func (p PaymentMethod) IsValid() bool {
	return p == PaymentCash || p == PaymentCreditCard || p == PaymentDebitCard || p == PaymentQPay
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// OrderItem snapshots the menu item it was ordered from; the menu item may
// change or disappear later without touching the order.
type OrderItem struct {
	ID            uuid.UUID `db:"id" json:"id"`
	OrderID       uuid.UUID `db:"order_id" json:"orderId"`
	MenuItemID    uuid.UUID `db:"menu_item_id" json:"menuItem"`
	Name          string    `db:"name" json:"name"`
	Quantity      int       `db:"quantity" json:"quantity"`
	Price         float64   `db:"price" json:"price"`
	SpecialOption string    `db:"special_option" json:"specialOption,omitempty"`
}

type Order struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	RestaurantID  uuid.UUID     `db:"restaurant_id" json:"restaurantId"`
	UserID        *uuid.UUID    `db:"user_id" json:"userId,omitempty"`
	TableNumber   string        `db:"table_number" json:"tableNumber"`
	Items         []OrderItem   `db:"-" json:"items"`
	Total         float64       `db:"total" json:"totalAmount"`
	Status        OrderStatus   `db:"status" json:"status"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"paymentStatus"`
	Notes         string        `db:"notes" json:"notes,omitempty"`
	CustomerName  string        `db:"customer_name" json:"customerName,omitempty"`
	CustomerPhone string        `db:"customer_phone" json:"customerPhone,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updatedAt"`
}

// OrderTotal is the only way a total is ever produced; client-supplied
// totals are discarded on save.
func OrderTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
