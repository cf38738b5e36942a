package dto

type CreateProductRequest struct {
	Name  string `json:"name" binding:"required"`
	Price int64  `json:"price" binding:"required,gt=0"`
	Stock int    `json:"stock" binding:"gte=0"`
}
