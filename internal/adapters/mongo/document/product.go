package document

import (
	"time"

	"github.com/storehaus/orders-api/internal/core/domain"
)

type ProductDocument struct {
	ID        int64     `bson:"_id"`
	Name      string    `bson:"name"`
	Price     int64     `bson:"price"`
	Stock     int       `bson:"stock"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (doc ProductDocument) GetID() int64 {
	return doc.ID
}

func (doc *ProductDocument) ToDomain() *domain.Product {
	return &domain.Product{
		ID:        domain.ID(doc.ID),
		Name:      doc.Name,
		Price:     domain.Amount(doc.Price),
		Stock:     doc.Stock,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func ToProductDocument(p *domain.Product) *ProductDocument {
	return &ProductDocument{
		ID:        int64(p.ID),
		Name:      p.Name,
		Price:     int64(p.Price),
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
