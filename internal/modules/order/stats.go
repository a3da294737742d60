package order

// Stats holds the sales aggregates the staff panel shows.
type Stats struct {
	TotalOrders    int            `json:"total_orders"`
	TotalRevenue   float64        `json:"total_revenue"`
	OrdersByStatus map[string]int `json:"orders_by_status"`
	TopProducts    []ProductSales `json:"top_products"`
}

// ProductSales is the order count and units sold for one product.
type ProductSales struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitsSold   int    `json:"units_sold"`
	OrderCount  int    `json:"order_count"`
}
