package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. pending → in_transit → delivered;
// cancelled es alcanzable desde pending o in_transit. delivered y cancelled
// son terminales, y delivered solo lo fija el motor de inventario al recibir.
const (
	OrderStatusPending   = "pending"
	OrderStatusInTransit = "in_transit"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// PurchaseOrder cabecera de una orden de compra a un proveedor.
// TotalAmount es la suma de los total_cost de sus detalles.
type PurchaseOrder struct {
	ID               int64
	OrderNumber      string // único, ver purchasing.FormatOrderNumber
	SupplierID       int64
	OrderDate        time.Time
	ExpectedDelivery *time.Time
	ReceivedDate     *time.Time
	Status           string
	TotalAmount      decimal.Decimal
	Notes            string
	CreatedAt        time.Time
}

// PurchaseOrderDetail línea de una orden de compra.
// QuantityReceived es monotónicamente no decreciente y nunca supera
// QuantityOrdered. TotalCost = UnitCost * QuantityOrdered, fijado al crear.
type PurchaseOrderDetail struct {
	ID               int64
	PurchaseOrderID  int64
	ProductID        int64
	QuantityOrdered  int
	QuantityReceived int
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal
}

// FullyReceived indica si la línea ya completó su cantidad ordenada.
func (d *PurchaseOrderDetail) FullyReceived() bool {
	return d.QuantityReceived >= d.QuantityOrdered
}
