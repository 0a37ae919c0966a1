package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea solicitada al crear una orden de compra.
type OrderItemRequest struct {
	ProductID       int64           `json:"product_id" validate:"required"`
	QuantityOrdered int             `json:"quantity_ordered" validate:"required,gt=0"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
}

// CreateOrderRequest entrada para crear una orden de compra.
type CreateOrderRequest struct {
	SupplierID       int64              `json:"supplier_id" validate:"required"`
	ExpectedDelivery *time.Time         `json:"expected_delivery"`
	Notes            string             `json:"notes"`
	Items            []OrderItemRequest `json:"items" validate:"required,min=1"`
}

// UpdateOrderRequest actualización parcial de la cabecera. Status nunca puede
// ser delivered por esta vía (lo fija el motor al recibir).
type UpdateOrderRequest struct {
	Status           *string    `json:"status"`
	ExpectedDelivery *time.Time `json:"expected_delivery"`
	Notes            *string    `json:"notes"`
}

// ReceiveItemRequest cantidad recibida contra un detalle concreto.
type ReceiveItemRequest struct {
	DetailID         int64 `json:"detail_id" validate:"required"`
	QuantityReceived int   `json:"quantity_received" validate:"required,gt=0"`
}

// ReceiveItemsRequest evento de recepción parcial de una orden.
type ReceiveItemsRequest struct {
	Items []ReceiveItemRequest `json:"items" validate:"required,min=1"`
}

// OrderDetailResponse línea de orden persistida.
type OrderDetailResponse struct {
	ID               int64           `json:"id"`
	ProductID        int64           `json:"product_id"`
	QuantityOrdered  int             `json:"quantity_ordered"`
	QuantityReceived int             `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
}

// OrderResponse orden de compra con sus líneas.
type OrderResponse struct {
	ID               int64                 `json:"id"`
	OrderNumber      string                `json:"order_number"`
	SupplierID       int64                 `json:"supplier_id"`
	OrderDate        time.Time             `json:"order_date"`
	ExpectedDelivery *time.Time            `json:"expected_delivery,omitempty"`
	ReceivedDate     *time.Time            `json:"received_date,omitempty"`
	Status           string                `json:"status"`
	TotalAmount      decimal.Decimal       `json:"total_amount"`
	Notes            string                `json:"notes,omitempty"`
	Details          []OrderDetailResponse `json:"details"`
}

// OrderListResponse lista paginada de órdenes (sin detalles).
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
