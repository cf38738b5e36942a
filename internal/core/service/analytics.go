package service

import (
	"context"

	"github.com/storehaus/orders-api/internal/core/domain"
	"github.com/storehaus/orders-api/internal/core/port"
	"github.com/storehaus/orders-api/internal/core/serviceerrors"
)

// AnalyticsService computes read-only aggregate views over the order and
// product collections. Nothing here mutates state.
type AnalyticsService struct {
	orderRepository   port.OrderPort
	productRepository port.ProductPort
}

func NewAnalyticsService(orderRepository port.OrderPort, productRepository port.ProductPort) *AnalyticsService {
	return &AnalyticsService{
		orderRepository:   orderRepository,
		productRepository: productRepository,
	}
}

func (s *AnalyticsService) AllOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepository.GetAll(ctx)
}

func (s *AnalyticsService) CancelledOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepository.GetByStatus(ctx, domain.OrderStatusCancelled)
}

func (s *AnalyticsService) ShippedOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepository.GetByStatus(ctx, domain.OrderStatusShipped)
}

// ProductRevenue sums quantity x current price over the product's
// non-cancelled orders. The order's stored total is deliberately not used:
// revenue reflects the price as it is today.
func (s *AnalyticsService) ProductRevenue(ctx context.Context, productID domain.ID) (*domain.ProductRevenue, error) {
	product, err := s.productRepository.GetByID(ctx, productID)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			return nil, serviceerrors.NewNotFoundError("Product not found")
		}
		return nil, err
	}

	orders, err := s.orderRepository.GetActiveByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	total := domain.Amount(0)
	for _, order := range orders {
		total = total.Add(product.Price.Multiply(order.Quantity))
	}

	return &domain.ProductRevenue{
		ProductID:    product.ID,
		ProductName:  product.Name,
		TotalRevenue: total,
		OrderCount:   len(orders),
	}, nil
}

// OverallRevenue folds quantity x current price over every non-cancelled
// order. Orders whose product no longer resolves contribute zero.
func (s *AnalyticsService) OverallRevenue(ctx context.Context) (*domain.RevenueSummary, error) {
	orders, err := s.orderRepository.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	priceByID := make(map[domain.ID]domain.Amount, len(products))
	for _, product := range products {
		priceByID[product.ID] = product.Price
	}

	total := domain.Amount(0)
	for _, order := range orders {
		if price, ok := priceByID[order.ProductID]; ok {
			total = total.Add(price.Multiply(order.Quantity))
		}
	}

	return &domain.RevenueSummary{
		TotalRevenue: total,
		OrderCount:   len(orders),
	}, nil
}
