package reports

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// ReportUseCase proyecciones de solo lectura para el tablero y los reportes.
// Consume el repositorio de lectura; nunca muta datos.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// DashboardMetrics métricas del día: ventas, ingresos, productos activos y
// alertas de stock bajo.
func (uc *ReportUseCase) DashboardMetrics(ctx context.Context) (*dto.DashboardMetrics, error) {
	today := time.Now()
	dailySales, err := uc.repo.DailySalesCount(ctx, today)
	if err != nil {
		return nil, err
	}
	dailyRevenue, err := uc.repo.DailyRevenue(ctx, today)
	if err != nil {
		return nil, err
	}
	totalProducts, err := uc.repo.TotalActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.repo.LowStockCount(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardMetrics{
		DailySales:    dailySales,
		DailyRevenue:  dailyRevenue,
		TotalProducts: totalProducts,
		LowStockCount: lowStock,
	}, nil
}

// BestSelling productos más vendidos en los últimos 30 días.
func (uc *ReportUseCase) BestSelling(ctx context.Context, limit int) ([]dto.BestSellingProduct, error) {
	if limit <= 0 {
		limit = 10
	}
	since := time.Now().AddDate(0, 0, -30)
	rows, err := uc.repo.BestSellingProducts(ctx, since, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BestSellingProduct, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BestSellingProduct{
			ProductID:    r.ProductID,
			ProductCode:  r.Code,
			ProductName:  r.Name,
			TotalSold:    r.TotalSold,
			TotalRevenue: r.TotalRevenue,
		})
	}
	return out, nil
}

// LowStock productos en o por debajo de su umbral mínimo, con su proveedor.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.LowStockItem, error) {
	rows, err := uc.repo.LowStockItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockItem{
			ProductID:    r.ProductID,
			ProductCode:  r.Code,
			ProductName:  r.Name,
			CurrentStock: r.Stock,
			MinStock:     r.MinStock,
			SupplierName: r.SupplierName,
		})
	}
	return out, nil
}

// SalesReport agregados de ventas por día entre dos fechas (incluyentes).
func (uc *ReportUseCase) SalesReport(ctx context.Context, start, end time.Time) ([]dto.SalesReportItem, error) {
	rows, err := uc.repo.SalesByDay(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesReportItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SalesReportItem{
			Date:              r.Date.Format("2006-01-02"),
			TotalSales:        r.TotalSales,
			TotalRevenue:      r.TotalRevenue,
			TotalProductsSold: r.TotalProductsSold,
		})
	}
	return out, nil
}

// ProductsReport unidades vendidas e ingresos por producto, con filtros
// opcionales de rango de fechas y categoría.
func (uc *ReportUseCase) ProductsReport(ctx context.Context, start, end *time.Time, categoryID *int64) ([]dto.ProductReportItem, error) {
	rows, err := uc.repo.ProductsReport(ctx, start, end, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductReportItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductReportItem{
			ProductID:    r.ProductID,
			ProductCode:  r.Code,
			ProductName:  r.Name,
			TotalSold:    r.TotalSold,
			TotalRevenue: r.TotalRevenue,
			CurrentStock: r.CurrentStock,
		})
	}
	return out, nil
}
