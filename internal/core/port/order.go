package port

import (
	"context"

	"github.com/storehaus/orders-api/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type OrderPort interface {
	// Create assigns the order id from the persisted counter, inserts the
	// order and writes its order.created event to the outbox.
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Order, error)
	GetAll(ctx context.Context) ([]*domain.Order, error)
	GetByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	// GetActive returns all orders whose status is not cancelled.
	GetActive(ctx context.Context) ([]*domain.Order, error)
	// GetActiveByProduct returns the non-cancelled orders for one product.
	GetActiveByProduct(ctx context.Context, productID domain.ID) ([]*domain.Order, error)
	UpdateStatusWithOutbox(ctx context.Context, id domain.ID, status domain.OrderStatus, event domain.Event) error
}
