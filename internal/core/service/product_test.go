package service

import (
	"context"
	"errors"
	"testing"

	"github.com/storehaus/orders-api/internal/core/domain"
	"github.com/storehaus/orders-api/internal/core/dto"
	"github.com/storehaus/orders-api/internal/core/port/mock"
	"go.uber.org/mock/gomock"
)

func setupProductService(t *testing.T) (*ProductService, *mock.MockProductPort) {
	ctrl := gomock.NewController(t)
	productRepo := mock.NewMockProductPort(ctrl)
	svc := NewProductService(productRepo)
	return svc, productRepo
}

func TestProductService_CreateProduct(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, productRepo := setupProductService(t)
		req := &dto.CreateProductRequest{
			Name:  "Test Product",
			Price: 2999,
			Stock: 50,
		}

		productRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Product) error {
				p.ID = domain.ID(1)
				return nil
			})

		product, err := svc.CreateProduct(context.Background(), req)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if product == nil {
			t.Fatal("expected product, got nil")
		}
		if product.Name != req.Name {
			t.Fatalf("expected name %q, got %q", req.Name, product.Name)
		}
		if int64(product.Price) != req.Price {
			t.Fatalf("expected price %d, got %d", req.Price, product.Price)
		}
		if product.Stock != req.Stock {
			t.Fatalf("expected stock %d, got %d", req.Stock, product.Stock)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		svc, productRepo := setupProductService(t)
		req := &dto.CreateProductRequest{
			Name:  "Test Product",
			Price: 2999,
			Stock: 10,
		}

		productRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed"))

		product, err := svc.CreateProduct(context.Background(), req)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if product != nil {
			t.Fatal("expected nil product on error")
		}
	})
}

func TestProductService_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, productRepo := setupProductService(t)
		productID := domain.ID(3)
		expected := &domain.Product{
			ID:    productID,
			Name:  "Test Product",
			Price: domain.Amount(2999),
			Stock: 50,
		}

		productRepo.EXPECT().
			GetByID(gomock.Any(), productID).
			Return(expected, nil)

		product, err := svc.GetByID(context.Background(), productID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if product.ID != expected.ID {
			t.Fatalf("expected product id %d, got %d", expected.ID, product.ID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc, productRepo := setupProductService(t)
		productID := domain.ID(3)

		productRepo.EXPECT().
			GetByID(gomock.Any(), productID).
			Return(nil, errors.New("not found"))

		product, err := svc.GetByID(context.Background(), productID)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if product != nil {
			t.Fatal("expected nil product")
		}
	})
}

func TestProductService_GetAll(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, productRepo := setupProductService(t)
		expected := []*domain.Product{
			{ID: 1, Name: "Product 1"},
			{ID: 2, Name: "Product 2"},
		}

		productRepo.EXPECT().
			GetAll(gomock.Any()).
			Return(expected, nil)

		products, err := svc.GetAll(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(products) != 2 {
			t.Fatalf("expected 2 products, got %d", len(products))
		}
	})

	t.Run("empty list", func(t *testing.T) {
		svc, productRepo := setupProductService(t)

		productRepo.EXPECT().
			GetAll(gomock.Any()).
			Return([]*domain.Product{}, nil)

		products, err := svc.GetAll(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(products) != 0 {
			t.Fatalf("expected 0 products, got %d", len(products))
		}
	})

	t.Run("repository error", func(t *testing.T) {
		svc, productRepo := setupProductService(t)

		productRepo.EXPECT().
			GetAll(gomock.Any()).
			Return(nil, errors.New("db error"))

		_, err := svc.GetAll(context.Background())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestProductService_StockMutations(t *testing.T) {
	productID := domain.ID(3)

	t.Run("deduct success", func(t *testing.T) {
		svc, productRepo := setupProductService(t)

		productRepo.EXPECT().
			DeductStock(gomock.Any(), productID, 5).
			Return(nil)

		if err := svc.DeductStock(context.Background(), productID, 5); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("deduct insufficient stock", func(t *testing.T) {
		svc, productRepo := setupProductService(t)

		productRepo.EXPECT().
			DeductStock(gomock.Any(), productID, 999).
			Return(errors.New("insufficient stock"))

		if err := svc.DeductStock(context.Background(), productID, 999); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("restore success", func(t *testing.T) {
		svc, productRepo := setupProductService(t)

		productRepo.EXPECT().
			RestoreStock(gomock.Any(), productID, 5).
			Return(nil)

		if err := svc.RestoreStock(context.Background(), productID, 5); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}
