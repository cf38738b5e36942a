package domain

import "time"

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	return s == OrderStatusPlaced || s == OrderStatusShipped || s == OrderStatusDelivered || s == OrderStatusCancelled
}

// IsTerminal reports whether no further transition is allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Next returns the single legal successor in the fulfilment flow
// placed -> shipped -> delivered. Cancellation is not part of the flow;
// it is reached only through the cancel operation.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPlaced:
		return OrderStatusShipped, true
	case OrderStatusShipped:
		return OrderStatusDelivered, true
	default:
		return "", false
	}
}

// DateLayout is the calendar-date format used for the cancellation window.
const DateLayout = "2006-01-02"

type Order struct {
	ID          ID
	ProductID   ID
	Quantity    int
	TotalAmount Amount
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewOrder(productID ID, quantity int, unitPrice Amount) *Order {
	return &Order{
		ProductID:   productID,
		Quantity:    quantity,
		TotalAmount: unitPrice.Multiply(quantity),
		Status:      OrderStatusPlaced,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// PlacedDate is the calendar date the order was created on.
func (o *Order) PlacedDate() string {
	return o.CreatedAt.UTC().Format(DateLayout)
}

// CancellableOn reports whether t falls on the same calendar day the order
// was placed. Same-day cancellation is allowed from any status.
func (o *Order) CancellableOn(t time.Time) bool {
	return o.PlacedDate() == t.UTC().Format(DateLayout)
}
