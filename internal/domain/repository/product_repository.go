package repository

import (
	"time"

	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila (SELECT FOR UPDATE).
	// Devuelve la fila aunque esté inactiva; el caller decide qué hacer con IsActive.
	GetForUpdate(id int64) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	// Update no toca Stock ni UpdatedAt de inventario; esos campos son del motor.
	Update(product *entity.Product) error
	// UpdateStock escribe el nuevo stock dentro de la transacción del motor.
	UpdateStock(id int64, stock int, updatedAt time.Time) error
	SoftDelete(id int64) error
}
