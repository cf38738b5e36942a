package service

import (
	"context"
	"fmt"
	"time"

	"github.com/storehaus/orders-api/internal/core/domain"
	"github.com/storehaus/orders-api/internal/core/dto"
	"github.com/storehaus/orders-api/internal/core/logger"
	"github.com/storehaus/orders-api/internal/core/port"
	"github.com/storehaus/orders-api/internal/core/serviceerrors"
	"github.com/storehaus/orders-api/internal/core/utils"
)

const orderCacheTTL = 15 * time.Minute

// OrderService drives the order lifecycle: placement with stock deduction,
// same-day cancellation with stock restoration, and the fixed status flow
// placed -> shipped -> delivered.
type OrderService struct {
	orderRepository port.OrderPort
	productService  *ProductService
	orderCache      port.CachePort[domain.Order]
	idempotency     *IdempotencyService[domain.Order]
	txManager       port.TransactionManager
	now             func() time.Time
}

func NewOrderService(
	orderRepository port.OrderPort,
	productService *ProductService,
	orderCache port.CachePort[domain.Order],
	idempotency *IdempotencyService[domain.Order],
	txManager port.TransactionManager,
) *OrderService {
	return &OrderService{
		orderRepository: orderRepository,
		productService:  productService,
		orderCache:      orderCache,
		idempotency:     idempotency,
		txManager:       txManager,
		now:             time.Now,
	}
}

func (s *OrderService) getCacheKey(orderID domain.ID) string {
	return fmt.Sprintf("order:%d", orderID)
}

func (s *OrderService) cacheOrder(ctx context.Context, order *domain.Order) {
	if err := s.orderCache.Set(ctx, s.getCacheKey(order.ID), order, orderCacheTTL); err != nil {
		logger.Error(ctx, "cache: set order failed", err, map[string]any{
			"order_id": order.ID,
		})
	}
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID domain.ID) (*domain.Order, error) {
	cached, err := s.orderCache.Get(ctx, s.getCacheKey(orderID))
	if err != nil {
		logger.Error(ctx, "cache: get order failed", err, map[string]any{
			"order_id": orderID,
		})
	}
	if cached != nil {
		return cached, nil
	}

	order, err := s.orderRepository.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.cacheOrder(ctx, order)
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepository.GetAll(ctx)
}

func (s *OrderService) processOrder(ctx context.Context, request *dto.CreateOrderRequest) (*domain.Order, error) {
	if request.ProductID == 0 || request.Quantity == 0 {
		return nil, serviceerrors.NewInvalidRequestError("productId and quantity are required")
	}
	if request.Quantity < 0 {
		return nil, serviceerrors.NewInvalidRequestError("Quantity must be greater than 0")
	}

	product, err := s.productService.GetByID(ctx, request.ProductID)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			return nil, serviceerrors.NewNotFoundError("Product not found")
		}
		return nil, err
	}

	if !product.HasStockFor(request.Quantity) {
		return nil, serviceerrors.NewInsufficientStockError("Insufficient stock")
	}

	order := domain.NewOrder(product.ID, request.Quantity, product.Price)
	order.CreatedAt = s.now()
	order.UpdatedAt = order.CreatedAt

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.productService.DeductStock(txCtx, order.ProductID, order.Quantity); err != nil {
			return err
		}
		return s.orderRepository.Create(txCtx, order)
	})
	if err != nil {
		logger.Error(ctx, "transaction: create order failed", err, map[string]any{
			"product_id": order.ProductID,
			"quantity":   order.Quantity,
		})
		return nil, err
	}

	logger.Info(ctx, "Order created successfully", map[string]any{
		"order_id":     order.ID,
		"product_id":   order.ProductID,
		"total_amount": order.TotalAmount,
	})
	return order, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, idempotencyKey string, request *dto.CreateOrderRequest) (*domain.Order, error) {
	if idempotencyKey == "" {
		return s.processOrder(ctx, request)
	}

	payloadHash := utils.HashJSON(request)

	existing, err := s.idempotency.Claim(ctx, idempotencyKey, payloadHash)
	if err != nil {
		logger.Error(ctx, "idempotency: claim failed", err, map[string]any{
			"idempotency_key": idempotencyKey,
		})
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	order, err := s.processOrder(ctx, request)
	if err != nil {
		s.idempotency.Release(ctx, idempotencyKey)
		return nil, err
	}

	s.idempotency.Complete(ctx, idempotencyKey, payloadHash, order)

	return order, nil
}

func (s *OrderService) CancelOrder(ctx context.Context, orderID domain.ID) (*domain.Order, error) {
	order, err := s.orderRepository.GetByID(ctx, orderID)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			return nil, serviceerrors.NewNotFoundError("Order not found")
		}
		return nil, err
	}

	if order.Status == domain.OrderStatusCancelled {
		return nil, serviceerrors.NewAlreadyCancelledError("Already cancelled orders cannot be cancelled again")
	}

	cancelledAt := s.now()
	if !order.CancellableOn(cancelledAt) {
		return nil, serviceerrors.NewCancellationExpiredError("Cancellation only allowed on the same day")
	}

	stockRestored := true
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.productService.RestoreStock(txCtx, order.ProductID, order.Quantity); err != nil {
			// The product may have disappeared since the order was placed;
			// the cancellation itself must still go through.
			if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
				return err
			}
			stockRestored = false
			logger.Warn(txCtx, "cancel: product gone, stock not restored", map[string]any{
				"order_id":   order.ID,
				"product_id": order.ProductID,
			})
		}

		event := domain.NewOrderCancelledEvent(order, stockRestored, cancelledAt)
		return s.orderRepository.UpdateStatusWithOutbox(txCtx, order.ID, domain.OrderStatusCancelled, event)
	})
	if err != nil {
		logger.Error(ctx, "transaction: cancel order failed", err, map[string]any{
			"order_id": order.ID,
		})
		return nil, err
	}

	order.Status = domain.OrderStatusCancelled
	order.UpdatedAt = cancelledAt
	s.cacheOrder(ctx, order)

	logger.Info(ctx, "Order cancelled successfully", map[string]any{
		"order_id":       order.ID,
		"stock_restored": stockRestored,
	})
	return order, nil
}

func (s *OrderService) AdvanceStatus(ctx context.Context, orderID domain.ID, status domain.OrderStatus) (*domain.Order, error) {
	if status == "" {
		return nil, serviceerrors.NewInvalidRequestError("Status is required")
	}

	order, err := s.orderRepository.GetByID(ctx, orderID)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			return nil, serviceerrors.NewNotFoundError("Order not found")
		}
		return nil, err
	}

	if order.Status.IsTerminal() {
		return nil, serviceerrors.NewTerminalStatusError("Cannot change status of cancelled or delivered orders")
	}

	next, ok := order.Status.Next()
	if !ok || status != next {
		return nil, serviceerrors.NewInvalidTransitionError(
			fmt.Sprintf("Cannot skip status. Current: %s, Expected: %s", order.Status, next))
	}

	updatedAt := s.now()
	oldStatus := order.Status
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		event := domain.NewOrderStatusChangedEvent(order.ID, status, oldStatus, updatedAt)
		return s.orderRepository.UpdateStatusWithOutbox(txCtx, order.ID, status, event)
	})
	if err != nil {
		return nil, err
	}

	order.Status = status
	order.UpdatedAt = updatedAt
	s.cacheOrder(ctx, order)

	logger.Info(ctx, "Order status updated", map[string]any{
		"order_id":   order.ID,
		"old_status": oldStatus,
		"new_status": status,
	})
	return order, nil
}
