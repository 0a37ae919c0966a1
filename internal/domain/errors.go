package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrProductInactive       = errors.New("producto inactivo")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrNoSupplierAssigned    = errors.New("el producto no tiene proveedor asignado")
	ErrDetailNotFound        = errors.New("el detalle no pertenece a la orden")
	ErrOrderAlreadyDelivered = errors.New("la orden ya fue entregada")
	ErrInvalidStatusChange   = errors.New("transición de estado no permitida")
)
