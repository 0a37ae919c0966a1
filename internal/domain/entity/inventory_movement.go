package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeSale       = "sale"       // salida por venta
	MovementTypePurchase   = "purchase"   // entrada por recepción de orden
	MovementTypeAdjustment = "adjustment" // ajuste manual
	MovementTypeReturn     = "return"     // devolución (reversa de venta)
)

// Tipos de referencia polimórfica del movimiento.
const (
	ReferenceTypeSale          = "sale"
	ReferenceTypePurchaseOrder = "purchase_order"
	ReferenceTypeAdjustment    = "adjustment"
)

// InventoryMovement registro de auditoría inmutable de un cambio de stock.
// Quantity es con signo (positivo entrada, negativo salida);
// PreviousStock y NewStock encuadran el cambio. Append-only: nunca se
// actualiza ni se borra.
type InventoryMovement struct {
	ID            int64
	ProductID     int64
	MovementType  string
	Quantity      int
	ReferenceType string
	ReferenceID   *int64
	MovementDate  time.Time
	Notes         string
	PreviousStock int
	NewStock      int
}
