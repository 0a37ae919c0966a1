package repository

import (
	"time"

	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para órdenes de compra y sus detalles.
// Cabecera y detalles se escriben fila a fila, de forma explícita: nada de
// cascadas implícitas; el borrado elimina detalles y luego la cabecera.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	CreateDetail(detail *entity.PurchaseOrderDetail) error
	GetByID(id int64) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera de la orden (SELECT FOR UPDATE) para
	// serializar recepciones concurrentes sobre la misma orden.
	GetForUpdate(id int64) (*entity.PurchaseOrder, error)
	ExistsByOrderNumber(orderNumber string) (bool, error)
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	ListDetails(orderID int64) ([]*entity.PurchaseOrderDetail, error)
	GetDetail(detailID int64) (*entity.PurchaseOrderDetail, error)
	Update(order *entity.PurchaseOrder) error
	UpdateDetailReceived(detailID int64, quantityReceived int) error
	// MarkDelivered fija status=delivered y received_date en una sola escritura.
	MarkDelivered(id int64, receivedDate time.Time) error
	Delete(id int64) error
}
