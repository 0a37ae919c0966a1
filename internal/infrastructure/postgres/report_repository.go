package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para dashboard y reportes.
// Trabaja siempre sobre el pool: ninguna consulta participa en transacciones.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// LowStockItems devuelve los productos activos en o por debajo de su umbral mínimo.
func (r *ReportRepo) LowStockItems(ctx context.Context) ([]repository.LowStockRow, error) {
	query := `
		SELECT p.id, p.code, p.name, p.stock, p.min_stock, s.name
		FROM products p
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE p.is_active AND p.stock <= p.min_stock
		ORDER BY p.stock ASC, p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductID, &row.Code, &row.Name, &row.Stock, &row.MinStock, &row.SupplierName); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// LowStockCount cuenta los productos activos en o por debajo de su umbral mínimo.
func (r *ReportRepo) LowStockCount(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE is_active AND stock <= min_stock`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("low stock count: %w", err)
	}
	return count, nil
}

// TotalActiveProducts cuenta los productos activos del catálogo.
func (r *ReportRepo) TotalActiveProducts(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE is_active`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("total active products: %w", err)
	}
	return count, nil
}

// DailySalesCount cuenta las ventas registradas durante el día dado.
func (r *ReportRepo) DailySalesCount(ctx context.Context, day time.Time) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM sales WHERE fecha::date = $1::date`, day,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("daily sales count: %w", err)
	}
	return count, nil
}

// DailyRevenue suma los totales de las ventas del día dado.
func (r *ReportRepo) DailyRevenue(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT coalesce(sum(total), 0) FROM sales WHERE fecha::date = $1::date`, day,
	).Scan(&revenue)
	if err != nil {
		return decimal.Zero, fmt.Errorf("daily revenue: %w", err)
	}
	return revenue, nil
}

// BestSellingProducts agrega unidades vendidas e ingreso por producto desde la
// fecha dada, ordenado por unidades vendidas.
func (r *ReportRepo) BestSellingProducts(ctx context.Context, since time.Time, limit int) ([]repository.BestSellerRow, error) {
	query := `
		SELECT p.id, p.code, p.name, coalesce(sum(d.quantity), 0), coalesce(sum(d.subtotal), 0)
		FROM sale_details d
		JOIN sales s ON s.id = d.sale_id
		JOIN products p ON p.id = d.product_id
		WHERE s.fecha >= $1
		GROUP BY p.id, p.code, p.name
		ORDER BY sum(d.quantity) DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("best selling products: %w", err)
	}
	defer rows.Close()
	var list []repository.BestSellerRow
	for rows.Next() {
		var row repository.BestSellerRow
		if err := rows.Scan(&row.ProductID, &row.Code, &row.Name, &row.TotalSold, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan best seller row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// SalesByDay agrega número de ventas, ingreso y unidades vendidas por día
// dentro del rango [start, end].
func (r *ReportRepo) SalesByDay(ctx context.Context, start, end time.Time) ([]repository.SalesByDayRow, error) {
	query := `
		SELECT s.fecha::date AS day,
		       count(*),
		       coalesce(sum(s.total), 0),
		       coalesce(sum(q.units), 0)
		FROM sales s
		LEFT JOIN (
			SELECT sale_id, sum(quantity) AS units FROM sale_details GROUP BY sale_id
		) q ON q.sale_id = s.id
		WHERE s.fecha::date BETWEEN $1::date AND $2::date
		GROUP BY day
		ORDER BY day`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}
	defer rows.Close()
	var list []repository.SalesByDayRow
	for rows.Next() {
		var row repository.SalesByDayRow
		if err := rows.Scan(&row.Date, &row.TotalSales, &row.TotalRevenue, &row.TotalProductsSold); err != nil {
			return nil, fmt.Errorf("scan sales by day row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ProductsReport agrega ventas acumuladas por producto; incluye productos sin
// ventas en el rango. Los filtros son opcionales.
func (r *ReportRepo) ProductsReport(ctx context.Context, start, end *time.Time, categoryID *int64) ([]repository.ProductReportRow, error) {
	query := `
		SELECT p.id, p.code, p.name, p.stock,
		       coalesce(sum(d.quantity), 0),
		       coalesce(sum(d.subtotal), 0)
		FROM products p
		LEFT JOIN (
			SELECT sd.product_id, sd.quantity, sd.subtotal
			FROM sale_details sd
			JOIN sales s ON s.id = sd.sale_id
			WHERE ($1::timestamptz IS NULL OR s.fecha >= $1)
			  AND ($2::timestamptz IS NULL OR s.fecha <= $2)
		) d ON d.product_id = p.id
		WHERE p.is_active
		  AND ($3::bigint IS NULL OR p.category_id = $3)
		GROUP BY p.id, p.code, p.name, p.stock
		ORDER BY coalesce(sum(d.quantity), 0) DESC, p.name`
	rows, err := r.q.Query(ctx, query, start, end, categoryID)
	if err != nil {
		return nil, fmt.Errorf("products report: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductReportRow
	for rows.Next() {
		var row repository.ProductReportRow
		if err := rows.Scan(&row.ProductID, &row.Code, &row.Name, &row.CurrentStock, &row.TotalSold, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan product report row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
