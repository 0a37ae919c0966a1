package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LowStockRow producto en o por debajo de su umbral mínimo (solo activos).
type LowStockRow struct {
	ProductID    int64
	Code         string
	Name         string
	Stock        int
	MinStock     int
	SupplierName *string
}

// BestSellerRow agregado de ventas por producto.
type BestSellerRow struct {
	ProductID    int64
	Code         string
	Name         string
	TotalSold    int
	TotalRevenue decimal.Decimal
}

// SalesByDayRow agregado de ventas por día.
type SalesByDayRow struct {
	Date              time.Time
	TotalSales        int
	TotalRevenue      decimal.Decimal
	TotalProductsSold int
}

// ProductReportRow ventas acumuladas por producto (incluye los que no vendieron).
type ProductReportRow struct {
	ProductID    int64
	Code         string
	Name         string
	CurrentStock int
	TotalSold    int
	TotalRevenue decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes y dashboard.
// Las implementaciones no modifican datos.
type ReportRepository interface {
	LowStockItems(ctx context.Context) ([]LowStockRow, error)
	LowStockCount(ctx context.Context) (int, error)
	TotalActiveProducts(ctx context.Context) (int, error)
	// DailySalesCount y DailyRevenue agregan las ventas cuyo fecha cae en el día dado.
	DailySalesCount(ctx context.Context, day time.Time) (int, error)
	DailyRevenue(ctx context.Context, day time.Time) (decimal.Decimal, error)
	BestSellingProducts(ctx context.Context, since time.Time, limit int) ([]BestSellerRow, error)
	SalesByDay(ctx context.Context, start, end time.Time) ([]SalesByDayRow, error)
	ProductsReport(ctx context.Context, start, end *time.Time, categoryID *int64) ([]ProductReportRow, error)
}
