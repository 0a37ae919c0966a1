package dto

import "time"

// RestockRequest cantidad a pedir en una orden de reposición.
type RestockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// AdjustmentRequest ajuste manual de stock (cantidad con signo).
type AdjustmentRequest struct {
	ProductID int64  `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required"`
	Notes     string `json:"notes"`
}

// MovementResponse registro de movimiento de inventario.
type MovementResponse struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"product_id"`
	MovementType  string    `json:"movement_type"`
	Quantity      int       `json:"quantity"`
	ReferenceType string    `json:"reference_type,omitempty"`
	ReferenceID   *int64    `json:"reference_id,omitempty"`
	MovementDate  time.Time `json:"movement_date"`
	Notes         string    `json:"notes,omitempty"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
}

// LowStockItem producto bajo el umbral mínimo.
type LowStockItem struct {
	ProductID    int64   `json:"product_id"`
	ProductCode  string  `json:"product_code"`
	ProductName  string  `json:"product_name"`
	CurrentStock int     `json:"current_stock"`
	MinStock     int     `json:"min_stock"`
	SupplierName *string `json:"supplier_name,omitempty"`
}
