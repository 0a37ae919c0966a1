package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `id, order_number, supplier_id, order_date, expected_delivery, received_date, status, total_amount, notes, created_at`

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de persistencia para órdenes de compra.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := row.Scan(&o.ID, &o.OrderNumber, &o.SupplierID, &o.OrderDate, &o.ExpectedDelivery,
		&o.ReceivedDate, &o.Status, &o.TotalAmount, &o.Notes, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste la cabecera de una orden. El ID generado se escribe en la entidad.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (order_number, supplier_id, order_date, expected_delivery, received_date, status, total_amount, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		order.OrderNumber, order.SupplierID, order.OrderDate, order.ExpectedDelivery,
		order.ReceivedDate, order.Status, order.TotalAmount, order.Notes, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de orden. El ID generado se escribe en la entidad.
func (r *PurchaseOrderRepo) CreateDetail(detail *entity.PurchaseOrderDetail) error {
	query := `
		INSERT INTO purchase_order_details (purchase_order_id, product_id, quantity_ordered, quantity_received, unit_cost, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		detail.PurchaseOrderID, detail.ProductID, detail.QuantityOrdered,
		detail.QuantityReceived, detail.UnitCost, detail.TotalCost,
	).Scan(&detail.ID)
	if err != nil {
		return fmt.Errorf("insert purchase order detail: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una orden por ID.
func (r *PurchaseOrderRepo) GetByID(id int64) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1`
	o, err := scanPurchaseOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return o, nil
}

// GetForUpdate lee la cabecera bloqueando la fila para serializar recepciones
// concurrentes sobre la misma orden.
func (r *PurchaseOrderRepo) GetForUpdate(id int64) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	o, err := scanPurchaseOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order for update: %w", err)
	}
	return o, nil
}

// ExistsByOrderNumber verifica si ya existe una orden con el número dado.
func (r *PurchaseOrderRepo) ExistsByOrderNumber(orderNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM purchase_orders WHERE order_number = $1)`, orderNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check order number: %w", err)
	}
	return exists, nil
}

// List lista órdenes con paginación, las más recientes primero.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders ORDER BY order_date DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// ListDetails lista las líneas de una orden en orden de inserción.
func (r *PurchaseOrderRepo) ListDetails(orderID int64) ([]*entity.PurchaseOrderDetail, error) {
	query := `
		SELECT id, purchase_order_id, product_id, quantity_ordered, quantity_received, unit_cost, total_cost
		FROM purchase_order_details WHERE purchase_order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order details: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderDetail
	for rows.Next() {
		var d entity.PurchaseOrderDetail
		if err := rows.Scan(&d.ID, &d.PurchaseOrderID, &d.ProductID, &d.QuantityOrdered,
			&d.QuantityReceived, &d.UnitCost, &d.TotalCost); err != nil {
			return nil, fmt.Errorf("scan purchase order detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// GetDetail obtiene una línea por su ID.
func (r *PurchaseOrderRepo) GetDetail(detailID int64) (*entity.PurchaseOrderDetail, error) {
	var d entity.PurchaseOrderDetail
	err := r.q.QueryRow(context.Background(),
		`SELECT id, purchase_order_id, product_id, quantity_ordered, quantity_received, unit_cost, total_cost
		 FROM purchase_order_details WHERE id = $1`, detailID,
	).Scan(&d.ID, &d.PurchaseOrderID, &d.ProductID, &d.QuantityOrdered,
		&d.QuantityReceived, &d.UnitCost, &d.TotalCost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order detail: %w", err)
	}
	return &d, nil
}

// Update actualiza campos mutables de la cabecera (status, entrega esperada, notas).
func (r *PurchaseOrderRepo) Update(order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET expected_delivery = $2, received_date = $3, status = $4, notes = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ExpectedDelivery, order.ReceivedDate, order.Status, order.Notes,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

// UpdateDetailReceived escribe la cantidad recibida acumulada de una línea.
func (r *PurchaseOrderRepo) UpdateDetailReceived(detailID int64, quantityReceived int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_order_details SET quantity_received = $2 WHERE id = $1`,
		detailID, quantityReceived,
	)
	if err != nil {
		return fmt.Errorf("update detail received: %w", err)
	}
	return nil
}

// MarkDelivered fija status=delivered y received_date en una sola escritura.
func (r *PurchaseOrderRepo) MarkDelivered(id int64, receivedDate time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, received_date = $3 WHERE id = $1`,
		id, entity.OrderStatusDelivered, receivedDate,
	)
	if err != nil {
		return fmt.Errorf("mark purchase order delivered: %w", err)
	}
	return nil
}

// Delete elimina una orden con sus detalles. Detalles primero, sin cascadas implícitas.
func (r *PurchaseOrderRepo) Delete(id int64) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_details WHERE purchase_order_id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase order details: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	return nil
}
