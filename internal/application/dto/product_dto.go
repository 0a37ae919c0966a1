package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code       string          `json:"code" validate:"required,min=1,max=50"`
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock" validate:"min=0"`
	MinStock   int             `json:"min_stock" validate:"min=0"`
	CategoryID *int64          `json:"category_id"`
	SupplierID *int64          `json:"supplier_id"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock: el
// stock solo lo muta el motor de inventario). Solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Code       *string          `json:"code" validate:"omitempty,min=1,max=50"`
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price      *decimal.Decimal `json:"price"`
	MinStock   *int             `json:"min_stock"`
	CategoryID *int64           `json:"category_id"`
	SupplierID *int64           `json:"supplier_id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         int64           `json:"id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	MinStock   int             `json:"min_stock"`
	CategoryID *int64          `json:"category_id,omitempty"`
	SupplierID *int64          `json:"supplier_id,omitempty"`
	IsActive   bool            `json:"is_active"`
	LowStock   bool            `json:"low_stock"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
