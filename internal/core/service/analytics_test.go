package service

import (
	"context"
	"errors"
	"testing"

	"github.com/storehaus/orders-api/internal/core/domain"
	"github.com/storehaus/orders-api/internal/core/port/mock"
	"github.com/storehaus/orders-api/internal/core/serviceerrors"
	"go.uber.org/mock/gomock"
)

func setupAnalyticsService(t *testing.T) (*AnalyticsService, *mock.MockOrderPort, *mock.MockProductPort) {
	ctrl := gomock.NewController(t)
	orderRepo := mock.NewMockOrderPort(ctrl)
	productRepo := mock.NewMockProductPort(ctrl)
	return NewAnalyticsService(orderRepo, productRepo), orderRepo, productRepo
}

func TestAnalyticsService_OrderListings(t *testing.T) {
	t.Run("all orders", func(t *testing.T) {
		svc, orderRepo, _ := setupAnalyticsService(t)
		expected := []*domain.Order{
			{ID: 1, Status: domain.OrderStatusPlaced},
			{ID: 2, Status: domain.OrderStatusCancelled},
		}

		orderRepo.EXPECT().
			GetAll(gomock.Any()).
			Return(expected, nil)

		orders, err := svc.AllOrders(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(orders) != 2 {
			t.Fatalf("expected 2 orders, got %d", len(orders))
		}
	})

	t.Run("cancelled orders filters by status", func(t *testing.T) {
		svc, orderRepo, _ := setupAnalyticsService(t)

		orderRepo.EXPECT().
			GetByStatus(gomock.Any(), domain.OrderStatusCancelled).
			Return([]*domain.Order{{ID: 2, Status: domain.OrderStatusCancelled}}, nil)

		orders, err := svc.CancelledOrders(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(orders) != 1 {
			t.Fatalf("expected 1 order, got %d", len(orders))
		}
	})

	t.Run("shipped orders filters by status", func(t *testing.T) {
		svc, orderRepo, _ := setupAnalyticsService(t)

		orderRepo.EXPECT().
			GetByStatus(gomock.Any(), domain.OrderStatusShipped).
			Return([]*domain.Order{}, nil)

		orders, err := svc.ShippedOrders(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(orders) != 0 {
			t.Fatalf("expected 0 orders, got %d", len(orders))
		}
	})

	t.Run("repo error propagates", func(t *testing.T) {
		svc, orderRepo, _ := setupAnalyticsService(t)

		orderRepo.EXPECT().
			GetAll(gomock.Any()).
			Return(nil, errors.New("db error"))

		_, err := svc.AllOrders(context.Background())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestAnalyticsService_ProductRevenue(t *testing.T) {
	productID := domain.ID(3)
	product := &domain.Product{
		ID:    productID,
		Name:  "Test Product",
		Price: domain.Amount(2500),
		Stock: 10,
	}

	t.Run("sums quantity times current price over active orders", func(t *testing.T) {
		svc, orderRepo, productRepo := setupAnalyticsService(t)

		productRepo.EXPECT().
			GetByID(gomock.Any(), productID).
			Return(product, nil)

		orderRepo.EXPECT().
			GetActiveByProduct(gomock.Any(), productID).
			Return([]*domain.Order{
				{ID: 1, ProductID: productID, Quantity: 2, Status: domain.OrderStatusPlaced},
				{ID: 2, ProductID: productID, Quantity: 3, Status: domain.OrderStatusDelivered},
			}, nil)

		revenue, err := svc.ProductRevenue(context.Background(), productID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		// 2500*2 + 2500*3 = 12500
		if revenue.TotalRevenue != domain.Amount(12500) {
			t.Fatalf("expected revenue 12500, got %d", revenue.TotalRevenue)
		}
		if revenue.OrderCount != 2 {
			t.Fatalf("expected 2 orders, got %d", revenue.OrderCount)
		}
		if revenue.ProductName != "Test Product" {
			t.Fatalf("unexpected product name %q", revenue.ProductName)
		}
	})

	t.Run("uses current price, not the stored order total", func(t *testing.T) {
		svc, orderRepo, productRepo := setupAnalyticsService(t)
		repriced := &domain.Product{
			ID:    productID,
			Name:  "Test Product",
			Price: domain.Amount(9999),
		}

		productRepo.EXPECT().
			GetByID(gomock.Any(), productID).
			Return(repriced, nil)

		orderRepo.EXPECT().
			GetActiveByProduct(gomock.Any(), productID).
			Return([]*domain.Order{
				{ID: 1, ProductID: productID, Quantity: 1, TotalAmount: domain.Amount(2500)},
			}, nil)

		revenue, err := svc.ProductRevenue(context.Background(), productID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if revenue.TotalRevenue != domain.Amount(9999) {
			t.Fatalf("expected revenue 9999, got %d", revenue.TotalRevenue)
		}
	})

	t.Run("no orders yields zero revenue and zero count", func(t *testing.T) {
		svc, orderRepo, productRepo := setupAnalyticsService(t)

		productRepo.EXPECT().
			GetByID(gomock.Any(), productID).
			Return(product, nil)

		orderRepo.EXPECT().
			GetActiveByProduct(gomock.Any(), productID).
			Return([]*domain.Order{}, nil)

		revenue, err := svc.ProductRevenue(context.Background(), productID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if revenue.TotalRevenue != 0 {
			t.Fatalf("expected revenue 0, got %d", revenue.TotalRevenue)
		}
		if revenue.OrderCount != 0 {
			t.Fatalf("expected 0 orders, got %d", revenue.OrderCount)
		}
	})

	t.Run("product not found", func(t *testing.T) {
		svc, _, productRepo := setupAnalyticsService(t)

		productRepo.EXPECT().
			GetByID(gomock.Any(), productID).
			Return(nil, serviceerrors.NewNotFoundError("entity not found"))

		_, err := svc.ProductRevenue(context.Background(), productID)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
		if err.Error() != "Product not found" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})

	t.Run("order repo error propagates", func(t *testing.T) {
		svc, orderRepo, productRepo := setupAnalyticsService(t)

		productRepo.EXPECT().
			GetByID(gomock.Any(), productID).
			Return(product, nil)

		orderRepo.EXPECT().
			GetActiveByProduct(gomock.Any(), productID).
			Return(nil, errors.New("db error"))

		_, err := svc.ProductRevenue(context.Background(), productID)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestAnalyticsService_OverallRevenue(t *testing.T) {
	t.Run("sums across products at current prices", func(t *testing.T) {
		svc, orderRepo, productRepo := setupAnalyticsService(t)

		orderRepo.EXPECT().
			GetActive(gomock.Any()).
			Return([]*domain.Order{
				{ID: 1, ProductID: 3, Quantity: 2},
				{ID: 2, ProductID: 4, Quantity: 1},
			}, nil)

		productRepo.EXPECT().
			GetAll(gomock.Any()).
			Return([]*domain.Product{
				{ID: 3, Price: domain.Amount(2500)},
				{ID: 4, Price: domain.Amount(1000)},
			}, nil)

		summary, err := svc.OverallRevenue(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		// 2500*2 + 1000*1 = 6000
		if summary.TotalRevenue != domain.Amount(6000) {
			t.Fatalf("expected revenue 6000, got %d", summary.TotalRevenue)
		}
		if summary.OrderCount != 2 {
			t.Fatalf("expected 2 orders, got %d", summary.OrderCount)
		}
	})

	t.Run("orders for missing products contribute zero but still count", func(t *testing.T) {
		svc, orderRepo, productRepo := setupAnalyticsService(t)

		orderRepo.EXPECT().
			GetActive(gomock.Any()).
			Return([]*domain.Order{
				{ID: 1, ProductID: 3, Quantity: 2},
				{ID: 2, ProductID: 99, Quantity: 5},
			}, nil)

		productRepo.EXPECT().
			GetAll(gomock.Any()).
			Return([]*domain.Product{
				{ID: 3, Price: domain.Amount(2500)},
			}, nil)

		summary, err := svc.OverallRevenue(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if summary.TotalRevenue != domain.Amount(5000) {
			t.Fatalf("expected revenue 5000, got %d", summary.TotalRevenue)
		}
		if summary.OrderCount != 2 {
			t.Fatalf("expected 2 orders, got %d", summary.OrderCount)
		}
	})

	t.Run("no active orders", func(t *testing.T) {
		svc, orderRepo, productRepo := setupAnalyticsService(t)

		orderRepo.EXPECT().
			GetActive(gomock.Any()).
			Return([]*domain.Order{}, nil)

		productRepo.EXPECT().
			GetAll(gomock.Any()).
			Return([]*domain.Product{}, nil)

		summary, err := svc.OverallRevenue(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if summary.TotalRevenue != 0 || summary.OrderCount != 0 {
			t.Fatalf("expected empty summary, got %+v", summary)
		}
	})

	t.Run("order repo error propagates", func(t *testing.T) {
		svc, orderRepo, _ := setupAnalyticsService(t)

		orderRepo.EXPECT().
			GetActive(gomock.Any()).
			Return(nil, errors.New("db error"))

		_, err := svc.OverallRevenue(context.Background())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("product repo error propagates", func(t *testing.T) {
		svc, orderRepo, productRepo := setupAnalyticsService(t)

		orderRepo.EXPECT().
			GetActive(gomock.Any()).
			Return([]*domain.Order{}, nil)

		productRepo.EXPECT().
			GetAll(gomock.Any()).
			Return(nil, errors.New("db error"))

		_, err := svc.OverallRevenue(context.Background())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
