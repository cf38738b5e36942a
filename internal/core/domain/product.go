package domain

import "time"

type Product struct {
	ID        ID
	Name      string
	Price     Amount
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewProduct(name string, price Amount, stock int) *Product {
	return &Product{
		Name:      name,
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// HasStockFor reports whether an order for the given quantity can be filled.
func (p *Product) HasStockFor(quantity int) bool {
	return p.Stock > 0 && quantity <= p.Stock
}
