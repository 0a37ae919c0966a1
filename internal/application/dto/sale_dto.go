package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea de venta solicitada. Si UnitPrice viene en cero se
// usa el precio actual del producto.
type SaleItemRequest struct {
	ProductID int64           `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest entrada para crear una venta con sus líneas.
type CreateSaleRequest struct {
	Items          []SaleItemRequest `json:"items" validate:"required,min=1"`
	TaxAmount      decimal.Decimal   `json:"tax_amount"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	PaymentMethod  string            `json:"payment_method" validate:"required"`
	CustomerName   string            `json:"customer_name"`
	Notes          string            `json:"notes"`
}

// SaleDetailResponse línea de venta persistida.
type SaleDetailResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID             int64                `json:"id"`
	Fecha          time.Time            `json:"fecha"`
	Total          decimal.Decimal      `json:"total"`
	TaxAmount      decimal.Decimal      `json:"tax_amount"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	PaymentMethod  string               `json:"payment_method"`
	CustomerName   string               `json:"customer_name,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	Details        []SaleDetailResponse `json:"details"`
}

// SaleListResponse lista paginada de ventas (sin detalles).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
