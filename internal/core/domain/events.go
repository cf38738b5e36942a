package domain

import "time"

type OrderCreatedEvent struct {
	OrderID     ID          `json:"order_id"`
	ProductID   ID          `json:"product_id"`
	Quantity    int         `json:"quantity"`
	TotalAmount Amount      `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (e *OrderCreatedEvent) GetName() string {
	return "order.created"
}

func (e *OrderCreatedEvent) GetEntityName() string {
	return "order"
}

func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		OrderID:     order.ID,
		ProductID:   order.ProductID,
		Quantity:    order.Quantity,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
	}
}

type OrderCancelledEvent struct {
	OrderID       ID        `json:"order_id"`
	ProductID     ID        `json:"product_id"`
	Quantity      int       `json:"quantity"`
	StockRestored bool      `json:"stock_restored"`
	CancelledAt   time.Time `json:"cancelled_at"`
}

func (e *OrderCancelledEvent) GetName() string {
	return "order.cancelled"
}

func (e *OrderCancelledEvent) GetEntityName() string {
	return "order"
}

func NewOrderCancelledEvent(order *Order, stockRestored bool, cancelledAt time.Time) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		OrderID:       order.ID,
		ProductID:     order.ProductID,
		Quantity:      order.Quantity,
		StockRestored: stockRestored,
		CancelledAt:   cancelledAt,
	}
}

type OrderStatusChangedEvent struct {
	OrderID   ID          `json:"order_id"`
	Status    OrderStatus `json:"status"`
	OldStatus OrderStatus `json:"old_status"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (e *OrderStatusChangedEvent) GetName() string {
	return "order.status_changed"
}

func (e *OrderStatusChangedEvent) GetEntityName() string {
	return "order"
}

func NewOrderStatusChangedEvent(orderID ID, status, oldStatus OrderStatus, updatedAt time.Time) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		OrderID:   orderID,
		Status:    status,
		OldStatus: oldStatus,
		UpdatedAt: updatedAt,
	}
}
