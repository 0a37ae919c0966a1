package repository

import "github.com/tu-usuario/pos-backoffice/internal/domain/entity"

// SaleRepository puerto de persistencia para ventas y sus detalles.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateDetail(detail *entity.SaleDetail) error
	GetByID(id int64) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	ListDetails(saleID int64) ([]*entity.SaleDetail, error)
	// Delete elimina primero los detalles y luego la cabecera (sin cascadas).
	Delete(id int64) error
}
