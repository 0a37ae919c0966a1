package dto

import "github.com/shopspring/decimal"

// DashboardMetrics métricas del día para el tablero.
type DashboardMetrics struct {
	DailySales    int             `json:"daily_sales"`
	DailyRevenue  decimal.Decimal `json:"daily_revenue"`
	TotalProducts int             `json:"total_products"`
	LowStockCount int             `json:"low_stock_count"`
}

// BestSellingProduct producto más vendido en el período consultado.
type BestSellingProduct struct {
	ProductID    int64           `json:"product_id"`
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	TotalSold    int             `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// SalesReportItem agregado de ventas de un día.
type SalesReportItem struct {
	Date              string          `json:"date"`
	TotalSales        int             `json:"total_sales"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalProductsSold int             `json:"total_products_sold"`
}

// ProductReportItem ventas acumuladas de un producto.
type ProductReportItem struct {
	ProductID    int64           `json:"product_id"`
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	TotalSold    int             `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	CurrentStock int             `json:"current_stock"`
}
