package domain

// ProductRevenue is the revenue summary for a single product, computed over
// its non-cancelled orders at the product's current price.
type ProductRevenue struct {
	ProductID    ID
	ProductName  string
	TotalRevenue Amount
	OrderCount   int
}

// RevenueSummary is the revenue total over all non-cancelled orders.
type RevenueSummary struct {
	TotalRevenue Amount
	OrderCount   int
}
