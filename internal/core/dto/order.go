package dto

import "github.com/storehaus/orders-api/internal/core/domain"

type CreateOrderRequest struct {
	ProductID domain.ID `json:"productId"`
	Quantity  int       `json:"quantity"`
}
