package repository

import "github.com/tu-usuario/pos-backoffice/internal/domain/entity"

// InventoryMovementRepository puerto del libro de auditoría de stock.
// Append-only: no existe Update ni Delete.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id int64) (*entity.InventoryMovement, error)
	List(limit, offset int) ([]*entity.InventoryMovement, error)
	ListByProduct(productID int64, limit, offset int) ([]*entity.InventoryMovement, error)
}
