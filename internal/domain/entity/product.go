package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Stock es un contador entero de
// unidades; solo el motor de inventario lo muta (junto con UpdatedAt).
// IsActive marca el soft delete: los productos nunca se borran físicamente.
type Product struct {
	ID         int64
	Code       string // código único del producto
	Name       string
	Price      decimal.Decimal // precio de venta (> 0)
	Stock      int             // unidades disponibles (>= 0)
	MinStock   int             // umbral para alertas de stock bajo
	CategoryID *int64
	SupplierID *int64
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LowStock indica si el producto está en o por debajo de su umbral mínimo.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}
