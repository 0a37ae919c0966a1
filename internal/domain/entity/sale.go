package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale cabecera de una venta. Total = suma de subtotales + impuesto - descuento.
type Sale struct {
	ID             int64
	Fecha          time.Time
	Total          decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	PaymentMethod  string
	CustomerName   string
	Notes          string
}

// SaleDetail línea de una venta. UnitPrice es el precio al momento de la venta
// (snapshot inmutable); Subtotal = UnitPrice * Quantity.
type SaleDetail struct {
	ID        int64
	SaleID    int64
	ProductID int64
	Quantity  int // fijo, > 0
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
