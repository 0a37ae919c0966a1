package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pos-backoffice/internal/application/reports"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// fakeReportRepo devuelve filas predefinidas y captura los argumentos de la
// última consulta para verificar cómo la arma el caso de uso.
type fakeReportRepo struct {
	lowStock    []repository.LowStockRow
	bestSellers []repository.BestSellerRow
	salesByDay  []repository.SalesByDayRow

	bestSince time.Time
	bestLimit int
}

var _ repository.ReportRepository = (*fakeReportRepo)(nil)

func (f *fakeReportRepo) LowStockItems(ctx context.Context) ([]repository.LowStockRow, error) {
	return f.lowStock, nil
}

func (f *fakeReportRepo) LowStockCount(ctx context.Context) (int, error) {
	return len(f.lowStock), nil
}

func (f *fakeReportRepo) TotalActiveProducts(ctx context.Context) (int, error) { return 42, nil }

func (f *fakeReportRepo) DailySalesCount(ctx context.Context, day time.Time) (int, error) {
	return 7, nil
}

func (f *fakeReportRepo) DailyRevenue(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	return decimal.NewFromInt(350), nil
}

func (f *fakeReportRepo) BestSellingProducts(ctx context.Context, since time.Time, limit int) ([]repository.BestSellerRow, error) {
	f.bestSince = since
	f.bestLimit = limit
	return f.bestSellers, nil
}

func (f *fakeReportRepo) SalesByDay(ctx context.Context, start, end time.Time) ([]repository.SalesByDayRow, error) {
	return f.salesByDay, nil
}

func (f *fakeReportRepo) ProductsReport(ctx context.Context, start, end *time.Time, categoryID *int64) ([]repository.ProductReportRow, error) {
	return nil, nil
}

func TestDashboardMetrics_AgregaLasCuatroConsultas(t *testing.T) {
	repo := &fakeReportRepo{
		lowStock: []repository.LowStockRow{{ProductID: 1, Code: "X-1", Stock: 1, MinStock: 5}},
	}
	uc := reports.NewReportUseCase(repo)

	out, err := uc.DashboardMetrics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, out.DailySales)
	assert.True(t, out.DailyRevenue.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, 42, out.TotalProducts)
	assert.Equal(t, 1, out.LowStockCount)
}

func TestBestSelling_VentanaDe30DiasYLimiteDefault(t *testing.T) {
	repo := &fakeReportRepo{
		bestSellers: []repository.BestSellerRow{
			{ProductID: 1, Code: "CAFE-500", Name: "Café", TotalSold: 40, TotalRevenue: decimal.NewFromInt(1000)},
		},
	}
	uc := reports.NewReportUseCase(repo)

	out, err := uc.BestSelling(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 10, repo.bestLimit, "límite por defecto")
	expectedSince := time.Now().AddDate(0, 0, -30)
	assert.WithinDuration(t, expectedSince, repo.bestSince, time.Minute)
	require.Len(t, out, 1)
	assert.Equal(t, "CAFE-500", out[0].ProductCode)
	assert.Equal(t, 40, out[0].TotalSold)
}

func TestLowStock_MapeaProveedor(t *testing.T) {
	supplier := "Distribuidora Norte"
	repo := &fakeReportRepo{
		lowStock: []repository.LowStockRow{
			{ProductID: 1, Code: "X-1", Name: "a", Stock: 1, MinStock: 5, SupplierName: &supplier},
			{ProductID: 2, Code: "X-2", Name: "b", Stock: 0, MinStock: 3},
		},
	}
	uc := reports.NewReportUseCase(repo)

	out, err := uc.LowStock(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 2)
	require.NotNil(t, out[0].SupplierName)
	assert.Equal(t, supplier, *out[0].SupplierName)
	assert.Nil(t, out[1].SupplierName, "sin proveedor asignado queda en null")
}

func TestSalesReport_FormateaFechas(t *testing.T) {
	repo := &fakeReportRepo{
		salesByDay: []repository.SalesByDayRow{
			{
				Date:              time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC),
				TotalSales:        3,
				TotalRevenue:      decimal.NewFromInt(120),
				TotalProductsSold: 9,
			},
		},
	}
	uc := reports.NewReportUseCase(repo)

	out, err := uc.SalesReport(context.Background(), time.Now().AddDate(0, 0, -7), time.Now())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2026-08-29", out[0].Date)
	assert.Equal(t, 3, out[0].TotalSales)
	assert.Equal(t, 9, out[0].TotalProductsSold)
}
