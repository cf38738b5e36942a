package document

import (
	"time"

	"github.com/storehaus/orders-api/internal/core/domain"
)

type OrderDocument struct {
	ID          int64     `bson:"_id"`
	ProductID   int64     `bson:"product_id"`
	Quantity    int       `bson:"quantity"`
	Status      string    `bson:"status"`
	TotalAmount int64     `bson:"total_amount"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (doc OrderDocument) GetID() int64 {
	return doc.ID
}

func (doc *OrderDocument) ToDomain() *domain.Order {
	return &domain.Order{
		ID:          domain.ID(doc.ID),
		ProductID:   domain.ID(doc.ProductID),
		Quantity:    doc.Quantity,
		Status:      domain.OrderStatus(doc.Status),
		TotalAmount: domain.Amount(doc.TotalAmount),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func ToOrderDocument(order *domain.Order) *OrderDocument {
	return &OrderDocument{
		ID:          int64(order.ID),
		ProductID:   int64(order.ProductID),
		Quantity:    order.Quantity,
		Status:      string(order.Status),
		TotalAmount: int64(order.TotalAmount),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}
